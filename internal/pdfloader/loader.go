// Package pdfloader extracts the raw transaction-listing rows from a
// mobile-money PDF statement. It decrypts the document when a password is
// supplied, extracts its text, and merges wrapped description lines so
// that each emitted RawLine is one logical transaction row. The document
// itself is not retained after extraction completes.
package pdfloader

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
)

// rowStartRe anchors the start of a transaction row: a receipt-id token
// followed by something shaped like a timestamp. Anything else is either
// page furniture or a continuation of the previous row's description.
// Receipt ids are 8-12 uppercase alphanumerics starting with a letter; the
// width varies by statement generation.
var rowStartRe = regexp.MustCompile(
	`^([A-Z][A-Z0-9]{7,11})\s+(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}(?::\d{2})?|\d{2}[-/]\d{2}[-/]\d{4}(?:\s+\d{2}:\d{2}(?::\d{2})?)?)\b`)

// headerMarkers identify non-transaction furniture lines that must never
// be appended to a description: column headers, page footers, disclaimers.
var headerMarkers = []string{
	"RECEIPT NO",
	"COMPLETION TIME",
	"TRANSACTION STATUS",
	"DETAILED STATEMENT",
	"SUMMARY",
	"DISCLAIMER",
	"PAGE ",
	"STATEMENT PERIOD",
	"CUSTOMER NAME",
	"MOBILE NUMBER",
	"EMAIL ADDRESS",
}

// Load extracts all transaction-listing rows from the PDF statement read
// from r, decrypting with password when the document is encrypted. It uses
// the production pdftotext extractor.
func Load(r io.Reader, password string, logger logging.Logger) ([]models.RawLine, error) {
	return LoadWithExtractor(r, password, NewPdftotextExtractor(), logger)
}

// LoadWithExtractor is Load with an injected Extractor.
func LoadWithExtractor(r io.Reader, password string, extractor Extractor, logger logging.Logger) ([]models.RawLine, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	// pdftotext works on files, so spool the reader to a temporary file
	// that is removed as soon as extraction is done.
	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			logger.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: "file", Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	text, err := extractor.ExtractText(tempFile.Name(), password)
	if err != nil {
		return nil, err
	}

	rows := splitRows(text)
	logger.Info("Extracted statement rows",
		logging.Field{Key: "rows", Value: len(rows)})

	return rows, nil
}

// splitRows walks the extracted text page by page and produces one RawLine
// per logical transaction row. A line starts a new row only when it begins
// with a receipt-id token followed by a timestamp; otherwise it continues
// the previous row's wrapped description.
func splitRows(text string) []models.RawLine {
	var rows []models.RawLine
	var current *models.RawLine

	// pdftotext separates pages with form feeds.
	for pageIdx, page := range strings.Split(text, "\f") {
		for lineIdx, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if rowStartRe.MatchString(line) {
				if current != nil {
					rows = append(rows, *current)
				}
				current = &models.RawLine{
					Page: pageIdx + 1,
					Line: lineIdx + 1,
					Text: line,
				}
				continue
			}

			if current == nil || isFurniture(line) {
				continue
			}

			// Wrapped description: no new receipt id, no new timestamp.
			current.Text += " " + line
		}
	}

	if current != nil {
		rows = append(rows, *current)
	}

	return rows
}

// isFurniture reports whether a line is page furniture rather than a
// wrapped description fragment.
func isFurniture(line string) bool {
	upper := strings.ToUpper(line)
	for _, marker := range headerMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
