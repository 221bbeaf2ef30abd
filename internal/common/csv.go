// Package common provides shared output functionality for the CLI
// commands.
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
)

// WriteTransactionsToCSV writes classified transactions to a CSV file in
// the standard export format. The directory is created when needed.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	logger.Info("Writing transactions to CSV file",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(transactions)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	return MarshalTransactions(transactions, file)
}

// MarshalTransactions writes transactions as CSV to any writer.
func MarshalTransactions(transactions []models.Transaction, w io.Writer) error {
	if err := gocsv.Marshal(&transactions, w); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}
