// Package engine wires the statement pipeline together: load raw rows
// from the PDF, parse them into transactions, classify each one, and hand
// the result to a fresh store. Each call processes one upload session; no
// state survives between calls, supporting the no-storage contract.
package engine

import (
	"io"

	"mpesalytics/engine/internal/categorizer"
	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/parsererror"
	"mpesalytics/engine/internal/pdfloader"
	"mpesalytics/engine/internal/stmtparser"
	"mpesalytics/engine/internal/store"
)

// Options configures one processing session. The zero value uses the
// production pdftotext extractor, the built-in rule table, and a default
// logger.
type Options struct {
	// Extractor overrides the PDF text extractor, mainly for tests.
	Extractor pdfloader.Extractor
	// RulesFile is an optional YAML keyword-rules file layered before
	// the built-in classification table.
	RulesFile string
	// Logger receives structured pipeline logs.
	Logger logging.Logger
}

// Process runs the full pipeline on the statement read from r, decrypting
// with password when the document is encrypted. Hard errors (rejected
// password, unrecognizable document) abort the session; malformed rows
// are soft and end up in the store's warning summary instead.
func Process(r io.Reader, password string) (*store.Store, error) {
	return ProcessWithOptions(r, password, Options{})
}

// ProcessWithOptions is Process with explicit dependencies.
func ProcessWithOptions(r io.Reader, password string, opts Options) (*store.Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = pdfloader.NewPdftotextExtractor()
	}

	rows, err := pdfloader.LoadWithExtractor(r, password, extractor, logger)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &parsererror.UnsupportedFormatError{
			Reason: "no transaction rows found in document",
		}
	}

	transactions, warnings := stmtparser.Parse(rows, logger)
	if len(transactions) == 0 {
		return nil, &parsererror.UnsupportedFormatError{
			Reason: "no transaction row could be parsed",
		}
	}

	cat, err := categorizer.NewWithRulesFile(opts.RulesFile, logger)
	if err != nil {
		return nil, err
	}
	cat.ClassifyAll(transactions)

	logger.Info("Statement processed",
		logging.Field{Key: "transactions", Value: len(transactions)},
		logging.Field{Key: "skipped", Value: warnings.SkippedRows})

	return store.New(transactions, warnings), nil
}
