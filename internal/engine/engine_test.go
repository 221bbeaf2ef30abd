package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
	"mpesalytics/engine/internal/parsererror"
	"mpesalytics/engine/internal/pdfloader"
	"mpesalytics/engine/internal/stmtparser"
)

const sampleStatementText = `MPESA STATEMENT
Customer Name: JOHN DOE

Receipt No   Completion Time   Details   Transaction Status   Paid In   Withdrawn   Balance
TJ71ABCD03 2025-07-17 09:15:00 Customer Transfer to - 0733****11 JANE DOE COMPLETED -100.00 2,150.00
TJ71ABCD02 2025-07-16 11:00:00 Funds received from - 0712****678 JOHN SMITH COMPLETED 500.00 2,250.00
TJ71ABCD01 2025-07-15 10:23:45 Merchant Payment to - 123456 KIOSK COMPLETED -250.00 1,750.00
STORE
Page 1 of 1
`

func processSample(t *testing.T, password string) Options {
	t.Helper()
	extractor := pdfloader.NewMockExtractor(sampleStatementText, nil)
	extractor.WantPassword = password
	return Options{Extractor: extractor, Logger: logging.NewMockLogger()}
}

func TestProcessEndToEnd(t *testing.T) {
	opts := processSample(t, "")

	st, err := ProcessWithOptions(strings.NewReader("pdf bytes"), "", opts)
	require.NoError(t, err)
	require.Equal(t, 3, st.Len())

	txs := st.All()

	// Newest-first statements come out chronological ascending.
	assert.True(t, stmtparser.Chronological(txs))
	assert.Equal(t, "TJ71ABCD01", txs[0].ReceiptID)

	// Every transaction is classified into the closed category set.
	for _, tx := range txs {
		assert.True(t, tx.Category.IsValid())
	}
	assert.Equal(t, models.CategoryBuyGoods, txs[0].Category)
	assert.Equal(t, "KIOSK STORE", txs[0].Counterparty)
	assert.Equal(t, models.CategoryReceivedMoney, txs[1].Category)
	assert.Equal(t, "JOHN SMITH", txs[1].Counterparty)
	assert.Equal(t, models.CategoryTransfer, txs[2].Category)
	assert.Equal(t, "JANE DOE", txs[2].Counterparty)
}

func TestProcessIsIdempotent(t *testing.T) {
	opts := processSample(t, "")
	first, err := ProcessWithOptions(strings.NewReader("pdf"), "", opts)
	require.NoError(t, err)

	opts = processSample(t, "")
	second, err := ProcessWithOptions(strings.NewReader("pdf"), "", opts)
	require.NoError(t, err)

	assert.Equal(t, first.All(), second.All())
	assert.Equal(t, first.Warnings(), second.Warnings())
}

func TestProcessEncryptedStatement(t *testing.T) {
	opts := processSample(t, "secret")

	// Wrong password aborts with a recoverable hard error.
	_, err := ProcessWithOptions(strings.NewReader("pdf"), "wrong", opts)
	require.Error(t, err)
	assert.True(t, parsererror.IsInvalidPassword(err))

	// Correct password processes normally.
	opts = processSample(t, "secret")
	st, err := ProcessWithOptions(strings.NewReader("pdf"), "secret", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Len())
}

func TestProcessUnrecognizableDocument(t *testing.T) {
	extractor := pdfloader.NewMockExtractor("An invoice.\nTotal due: 100.00\nThank you.", nil)
	opts := Options{Extractor: extractor, Logger: logging.NewMockLogger()}

	_, err := ProcessWithOptions(strings.NewReader("pdf"), "", opts)
	require.Error(t, err)
	assert.True(t, parsererror.IsUnsupportedFormat(err))
}

func TestProcessCollectsWarnings(t *testing.T) {
	text := `Receipt No   Completion Time
TJ71ABCD01 2025-07-15 10:23:45 Merchant Payment to - KIOSK STORE COMPLETED -250.00 1,750.00
TJ71ABCD02 2025-07-16 11:00:00 Broken row with no amounts COMPLETED
`
	extractor := pdfloader.NewMockExtractor(text, nil)
	opts := Options{Extractor: extractor, Logger: logging.NewMockLogger()}

	st, err := ProcessWithOptions(strings.NewReader("pdf"), "", opts)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 1, st.Warnings().SkippedRows)
}
