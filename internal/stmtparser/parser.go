// Package stmtparser converts raw statement rows into typed transactions.
// It is tolerant by design: rows that cannot be parsed are excluded and
// counted, never fatal, so a statement with a few corrupted rows still
// processes the rest.
package stmtparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mpesalytics/engine/internal/dateutils"
	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
	"mpesalytics/engine/internal/textutils"
)

var (
	// receiptRe matches the receipt-id token opening every row. Width
	// varies by statement generation, so 8-12 characters are accepted.
	receiptRe = regexp.MustCompile(`^([A-Z][A-Z0-9]{7,11})\s+(.*)$`)

	// timestampRe captures the completion-time token that follows.
	timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}(?::\d{2})?|\d{2}[-/]\d{2}[-/]\d{4}(?:\s+\d{2}:\d{2}(?::\d{2})?)?)\s+(.*)$`)

	// amountRe matches a printed monetary token, optionally negative,
	// with thousands separators.
	amountRe = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?$|^-?\d+(?:\.\d{1,2})?$`)

	// statusRe matches the transaction-status column.
	statusRe = regexp.MustCompile(`^(?i:completed|failed|pending|cancelled)$`)
)

// Parse converts each logical row into a Transaction or a warning. The
// returned sequence is always in chronological ascending order: statements
// listing newest-first are detected and reversed.
func Parse(rows []models.RawLine, logger logging.Logger) ([]models.Transaction, models.Warnings) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	var transactions []models.Transaction
	var warnings models.Warnings

	for _, row := range rows {
		tx, err := parseRow(row)
		if err != nil {
			warnings.Add(row.Text, err.Error())
			logger.WithError(err).Debug("Skipping malformed row",
				logging.Field{Key: "page", Value: row.Page},
				logging.Field{Key: "line", Value: row.Line})
			continue
		}
		transactions = append(transactions, tx)
	}

	normalizeOrientation(transactions)

	logger.Info("Parsed statement rows",
		logging.Field{Key: "transactions", Value: len(transactions)},
		logging.Field{Key: "skipped", Value: warnings.SkippedRows})

	return transactions, warnings
}

// parseRow extracts one transaction from a merged logical row of the form
//
//	RECEIPT TIMESTAMP details... STATUS [paid_in] [withdrawn] balance [wrapped details...]
//
// Wrapped description fragments trail the amount columns because the
// loader appends continuation lines to the row text.
func parseRow(row models.RawLine) (models.Transaction, error) {
	m := receiptRe.FindStringSubmatch(row.Text)
	if m == nil {
		return models.Transaction{}, fmt.Errorf("no receipt id")
	}
	receipt, rest := m[1], m[2]

	tm := timestampRe.FindStringSubmatch(rest)
	if tm == nil {
		return models.Transaction{}, fmt.Errorf("no timestamp after receipt id")
	}
	ts, _, err := dateutils.ParseTimestamp(tm[1])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("unparseable timestamp: %w", err)
	}
	rest = tm[2]

	description, amounts := splitAmounts(rest)
	if description == "" {
		description = rest
	}

	paidIn, withdrawn, balance, err := resolveAmounts(amounts)
	if err != nil {
		return models.Transaction{}, err
	}

	// Exactly one of paid-in/withdrawn must be present and non-zero;
	// statements record money movement one-directionally per row.
	if paidIn.IsZero() == withdrawn.IsZero() {
		return models.Transaction{}, fmt.Errorf("row moves money in no single direction")
	}

	return models.Transaction{
		ReceiptID:   receipt,
		Timestamp:   ts,
		Description: textutils.CollapseWhitespace(description),
		PaidIn:      paidIn,
		Withdrawn:   withdrawn,
		Balance:     balance,
	}, nil
}

// splitAmounts finds the status column and the amount tokens that follow
// it, and reassembles the description from the text on either side (the
// text after the amounts is the wrapped continuation of the description).
func splitAmounts(rest string) (description string, amounts []string) {
	tokens := strings.Fields(rest)

	statusIdx := -1
	for i, tok := range tokens {
		if statusRe.MatchString(tok) {
			statusIdx = i
			break
		}
	}

	if statusIdx >= 0 {
		var descParts []string
		descParts = append(descParts, tokens[:statusIdx]...)
		i := statusIdx + 1
		for ; i < len(tokens) && len(amounts) < 3; i++ {
			if !amountRe.MatchString(tokens[i]) {
				break
			}
			amounts = append(amounts, tokens[i])
		}
		descParts = append(descParts, tokens[i:]...)
		return strings.Join(descParts, " "), amounts
	}

	// No status column (older statement generations): take the trailing
	// run of amount tokens instead.
	end := len(tokens)
	for end > 0 && len(amounts) < 3 && amountRe.MatchString(tokens[end-1]) {
		amounts = append([]string{tokens[end-1]}, amounts...)
		end--
	}
	return strings.Join(tokens[:end], " "), amounts
}

// resolveAmounts maps the 1-3 amount tokens of a row onto the paid-in,
// withdrawn, and balance fields. The balance is always the last token.
// Withdrawn amounts print as negatives and are folded to absolute values.
func resolveAmounts(amounts []string) (paidIn, withdrawn, balance decimal.Decimal, err error) {
	if len(amounts) < 2 {
		return paidIn, withdrawn, balance, fmt.Errorf("missing amount columns (got %d)", len(amounts))
	}

	parsed := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		d, perr := models.ParseAmount(a)
		if perr != nil {
			return paidIn, withdrawn, balance, fmt.Errorf("unparseable amount: %w", perr)
		}
		parsed[i] = d
	}

	// Balance may legitimately be negative for overdraft-like states.
	balance = parsed[len(parsed)-1]

	switch len(parsed) {
	case 2:
		if parsed[0].IsNegative() {
			withdrawn = parsed[0].Abs()
		} else {
			paidIn = parsed[0]
		}
	case 3:
		paidIn = parsed[0].Abs()
		withdrawn = parsed[1].Abs()
	}

	return paidIn, withdrawn, balance, nil
}

// normalizeOrientation detects whether the statement lists newest-first by
// comparing the first and last parsed timestamps, and reverses the slice
// in place so the store always holds chronological ascending order.
func normalizeOrientation(transactions []models.Transaction) {
	if len(transactions) < 2 {
		return
	}
	first := transactions[0].Timestamp
	last := transactions[len(transactions)-1].Timestamp
	if !first.After(last) {
		return
	}
	for i, j := 0, len(transactions)-1; i < j; i, j = i+1, j-1 {
		transactions[i], transactions[j] = transactions[j], transactions[i]
	}
}

// Chronological reports whether timestamps are non-decreasing in order.
func Chronological(transactions []models.Transaction) bool {
	var prev time.Time
	for _, tx := range transactions {
		if tx.Timestamp.Before(prev) {
			return false
		}
		prev = tx.Timestamp
	}
	return true
}
