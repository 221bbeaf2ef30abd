// Package summary handles the statement summary command
package summary

import (
	"os"

	"mpesalytics/engine/cmd/root"
	"mpesalytics/engine/internal/engine"
	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
	"mpesalytics/engine/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Parse a PDF statement and print per-category and monthly totals",
	Long: `Parse an M-Pesa PDF statement, classify every transaction, and print a
per-category overview followed by monthly paid-in/withdrawn totals.`,
	Run: summaryFunc,
}

func summaryFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Summary command called")

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("--input is required")
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
		if parsererror.IsInvalidPassword(err) {
			root.Log.Fatal("The statement is encrypted and the password was rejected")
		}
		root.Log.Fatalf("Error processing statement: %v", err)
	}

	from, to := st.DateRange()
	root.Log.Infof("Statement: %d transactions from %s to %s",
		st.Len(), from.Format("2006-01-02"), to.Format("2006-01-02"))

	for _, row := range st.CategorySummary() {
		root.Log.Infof("%-18s count=%-4d in=%-12s out=%-12s counterparties=%d",
			row.Category, row.Count,
			models.FormatAmount(row.TotalPaidIn),
			models.FormatAmount(row.TotalWithdrawn),
			row.UniqueCounterparties)
	}

	months, totals := st.MonthlyTotals()
	for _, month := range months {
		agg := totals[month]
		root.Log.Infof("%-12s count=%-4d in=%-12s out=%-12s",
			month, agg.Count,
			models.FormatAmount(agg.TotalPaidIn),
			models.FormatAmount(agg.TotalWithdrawn))
	}

	if w := st.Warnings(); !w.Empty() {
		root.Log.Warnf("Skipped %d malformed row(s)", w.SkippedRows)
	}
}
