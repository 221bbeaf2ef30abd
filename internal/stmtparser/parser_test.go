package stmtparser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
)

func row(text string) models.RawLine {
	return models.RawLine{Page: 1, Line: 1, Text: text}
}

func TestParseRowWithdrawal(t *testing.T) {
	txs, warnings := Parse([]models.RawLine{
		row("TJ71ABCD01 2025-07-15 10:23:45 Merchant Payment to 123456 - KIOSK STORE COMPLETED -250.00 1,750.00"),
	}, logging.NewMockLogger())

	require.Len(t, txs, 1)
	assert.True(t, warnings.Empty())

	tx := txs[0]
	assert.Equal(t, "TJ71ABCD01", tx.ReceiptID)
	assert.Equal(t, time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC), tx.Timestamp)
	assert.Equal(t, "Merchant Payment to 123456 - KIOSK STORE", tx.Description)
	assert.True(t, tx.PaidIn.IsZero())
	// Negative printed amounts fold to absolute withdrawals.
	assert.True(t, tx.Withdrawn.Equal(decimal.NewFromInt(250)))
	assert.True(t, tx.Balance.Equal(decimal.NewFromInt(1750)))
	assert.Equal(t, models.DirectionOut, tx.Direction())
}

func TestParseRowPaidIn(t *testing.T) {
	txs, warnings := Parse([]models.RawLine{
		row("TJ71ABCD02 2025-07-16 11:00:00 Funds received from - 0712****678 JOHN SMITH COMPLETED 500.00 2,250.00"),
	}, logging.NewMockLogger())

	require.Len(t, txs, 1)
	assert.True(t, warnings.Empty())
	assert.True(t, txs[0].PaidIn.Equal(decimal.NewFromInt(500)))
	assert.True(t, txs[0].Withdrawn.IsZero())
	assert.Equal(t, models.DirectionIn, txs[0].Direction())
}

func TestParseRowWrappedDescription(t *testing.T) {
	// The loader appends wrapped lines after the amount columns; the parser
	// reassembles the description around them.
	txs, _ := Parse([]models.RawLine{
		row("TJ71ABCD03 2025-07-17 09:15:00 Customer Transfer to - 0733****11 JANE COMPLETED -100.00 2,150.00 DOE"),
	}, logging.NewMockLogger())

	require.Len(t, txs, 1)
	assert.Equal(t, "Customer Transfer to - 0733****11 JANE DOE", txs[0].Description)
}

func TestParseRowThreeAmountColumns(t *testing.T) {
	// Statements printing explicit paid-in and withdrawn columns.
	txs, _ := Parse([]models.RawLine{
		row("TJ71ABCD04 2025-07-18 08:00:00 Pay Bill to KPLC PREPAID COMPLETED 0.00 -1,200.00 950.00"),
	}, logging.NewMockLogger())

	require.Len(t, txs, 1)
	assert.True(t, txs[0].PaidIn.IsZero())
	assert.True(t, txs[0].Withdrawn.Equal(decimal.NewFromInt(1200)))
	assert.True(t, txs[0].Balance.Equal(decimal.NewFromInt(950)))
}

func TestParseRowNoStatusColumn(t *testing.T) {
	// Older statement generations have no transaction-status column; the
	// trailing run of amount tokens is taken instead.
	txs, _ := Parse([]models.RawLine{
		row("QAB1CDEF23 15/07/2025 10:23:45 Buy Goods Till 123456 KIOSK STORE -250.00 1,750.00"),
	}, logging.NewMockLogger())

	require.Len(t, txs, 1)
	assert.Equal(t, "Buy Goods Till 123456 KIOSK STORE", txs[0].Description)
	assert.True(t, txs[0].Withdrawn.Equal(decimal.NewFromInt(250)))
}

func TestParseRowDayFirstMinutePrecisionTimestamp(t *testing.T) {
	// Every timestamp shape the row-start regex recognizes must also have
	// a parse layout, or valid rows get discarded as malformed.
	txs, warnings := Parse([]models.RawLine{
		row("QAB1CDEF23 15/07/2025 10:23 Buy Goods Till 123456 KIOSK STORE -250.00 1,750.00"),
	}, logging.NewMockLogger())

	require.Len(t, txs, 1)
	assert.True(t, warnings.Empty())
	assert.Equal(t, time.Date(2025, 7, 15, 10, 23, 0, 0, time.UTC), txs[0].Timestamp)
}

func TestParseMalformedRowsAreWarnings(t *testing.T) {
	logger := logging.NewMockLogger()
	txs, warnings := Parse([]models.RawLine{
		row("TJ71ABCD01 2025-07-15 10:23:45 Merchant Payment COMPLETED -250.00 1,750.00"),
		row("TJ71ABCD05 2025-07-19 12:00:00 Broken row with no amounts COMPLETED"),
		row("garbage that is not a row at all"),
	}, logger)

	// Malformed rows are excluded and counted, never fatal.
	assert.Len(t, txs, 1)
	assert.Equal(t, 2, warnings.SkippedRows)
	assert.Len(t, warnings.Samples, 2)
}

func TestParseRowNoDirectionIsMalformed(t *testing.T) {
	// Both paid-in and withdrawn zero: the row moves no money.
	_, warnings := Parse([]models.RawLine{
		row("TJ71ABCD06 2025-07-20 12:00:00 Odd row COMPLETED 0.00 1,000.00"),
	}, logging.NewMockLogger())

	assert.Equal(t, 1, warnings.SkippedRows)
}

func TestParseNormalizesNewestFirstStatements(t *testing.T) {
	newestFirst := []models.RawLine{
		row("TJ71ABCD03 2025-07-17 09:15:00 Customer Transfer to - JANE DOE COMPLETED -100.00 2,150.00"),
		row("TJ71ABCD02 2025-07-16 11:00:00 Funds received from - JOHN SMITH COMPLETED 500.00 2,250.00"),
		row("TJ71ABCD01 2025-07-15 10:23:45 Merchant Payment to - KIOSK STORE COMPLETED -250.00 1,750.00"),
	}

	txs, _ := Parse(newestFirst, logging.NewMockLogger())
	require.Len(t, txs, 3)
	assert.True(t, Chronological(txs))
	assert.Equal(t, "TJ71ABCD01", txs[0].ReceiptID)
	assert.Equal(t, "TJ71ABCD03", txs[2].ReceiptID)
}

func TestParseKeepsOldestFirstStatements(t *testing.T) {
	oldestFirst := []models.RawLine{
		row("TJ71ABCD01 2025-07-15 10:23:45 Merchant Payment to - KIOSK STORE COMPLETED -250.00 1,750.00"),
		row("TJ71ABCD02 2025-07-16 11:00:00 Funds received from - JOHN SMITH COMPLETED 500.00 2,250.00"),
	}

	txs, _ := Parse(oldestFirst, logging.NewMockLogger())
	require.Len(t, txs, 2)
	assert.True(t, Chronological(txs))
	assert.Equal(t, "TJ71ABCD01", txs[0].ReceiptID)
}
