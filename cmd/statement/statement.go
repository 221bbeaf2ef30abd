// Package statement handles the PDF statement to CSV conversion command
package statement

import (
	"os"

	"mpesalytics/engine/cmd/root"
	"mpesalytics/engine/internal/common"
	"mpesalytics/engine/internal/engine"
	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Parse a PDF statement and export classified transactions to CSV",
	Long: `Parse an M-Pesa PDF statement, classify every transaction, and write
the result to a CSV file. Encrypted statements are decrypted with --password.`,
	Run: statementFunc,
}

func statementFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Statement command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Both --input and --output are required")
	}

	file, err := os.Open(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error opening statement: %v", err)
	}
	defer file.Close()

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	st, err := engine.ProcessWithOptions(file, root.SharedFlags.Password, engine.Options{
		Extractor: root.NewExtractor(),
		RulesFile: root.RulesFile(),
		Logger:    logger,
	})
	if err != nil {
		switch {
		case parsererror.IsInvalidPassword(err):
			root.Log.Fatal("The statement is encrypted and the password was rejected")
		case parsererror.IsUnsupportedFormat(err):
			root.Log.Fatalf("The document does not look like a supported statement: %v", err)
		default:
			root.Log.Fatalf("Error processing statement: %v", err)
		}
	}

	if w := st.Warnings(); !w.Empty() {
		root.Log.Warnf("Skipped %d malformed row(s)", w.SkippedRows)
		for _, sample := range w.Samples {
			root.Log.Warnf("  %s", sample)
		}
	}

	if err := common.WriteTransactionsToCSV(st.All(), root.SharedFlags.Output, logger); err != nil {
		root.Log.Fatalf("Error writing CSV: %v", err)
	}
	root.Log.Infof("Wrote %d transactions to %s", st.Len(), root.SharedFlags.Output)
}
