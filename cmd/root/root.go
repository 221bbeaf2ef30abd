// Package root contains the root command for the application
package root

import (
	"mpesalytics/engine/internal/config"
	"mpesalytics/engine/internal/pdfloader"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Password string
	Rules    string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "mpesalytics",
		Short: "A CLI tool to parse mobile-money PDF statements and categorize transactions.",
		Long: `mpesalytics parses M-Pesa PDF statements into structured transactions,
classifies each one by transaction type and counterparty, and exports or
summarizes the result.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to mpesalytics!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLoggingFromConfig(config.GetGlobalConfig())
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific categorize command flags
	Description string
	Received    bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF statement")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Password, "password", "p", "", "Statement password (for encrypted PDFs)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Rules, "rules", "r", "", "Optional YAML keyword-rules file (overrides configured classifier.rules_file)")
}

// RulesFile resolves the keyword-rules file to use: the --rules flag when
// given, otherwise the configured classifier rules file.
func RulesFile() string {
	if SharedFlags.Rules != "" {
		return SharedFlags.Rules
	}
	return config.GetGlobalConfig().Classifier.RulesFile
}

// NewExtractor builds the production PDF extractor from the loaded
// configuration (pdftotext binary path, keep-extracted-text debugging).
func NewExtractor() *pdfloader.PdftotextExtractor {
	cfg := config.GetGlobalConfig()
	return &pdfloader.PdftotextExtractor{
		Binary:       cfg.Loader.PdftotextPath,
		KeepTextFile: cfg.Loader.KeepExtractedText,
	}
}
