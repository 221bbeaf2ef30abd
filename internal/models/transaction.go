package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the canonical unit produced by the parser and enriched by
// the classifier. After classification it is owned read-only by the store.
type Transaction struct {
	ReceiptID   string          `json:"receipt_id" csv:"Receipt No"`
	Timestamp   time.Time       `json:"timestamp" csv:"Completion Time"`
	Description string          `json:"description" csv:"Details"`
	PaidIn      decimal.Decimal `json:"paid_in" csv:"Paid In"`
	Withdrawn   decimal.Decimal `json:"withdrawn" csv:"Withdrawn"`
	Balance     decimal.Decimal `json:"balance" csv:"Balance"`

	Category     Category `json:"category" csv:"Category"`
	Subcategory  string   `json:"subcategory,omitempty" csv:"Subcategory"`
	Counterparty string   `json:"counterparty" csv:"Counterparty"`
	AccountNo    string   `json:"account_no,omitempty" csv:"Account No"`
	IsCharge     bool     `json:"is_charge" csv:"Is Charge"`
}

// Direction reports which way money moved. Exactly one of PaidIn and
// Withdrawn is positive for every transaction the parser emits.
func (t Transaction) Direction() Direction {
	switch {
	case t.PaidIn.IsPositive():
		return DirectionIn
	case t.Withdrawn.IsPositive():
		return DirectionOut
	default:
		return DirectionUnknown
	}
}

// Amount returns the moved amount regardless of direction.
func (t Transaction) Amount() decimal.Decimal {
	if t.PaidIn.IsPositive() {
		return t.PaidIn
	}
	return t.Withdrawn
}

// Classification is the result of categorizing a single description.
type Classification struct {
	Category     Category
	Subcategory  string
	Counterparty string
	AccountNo    string
	IsCharge     bool
}
