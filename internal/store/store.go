// Package store holds the classified transactions of one processed
// statement and answers the queries the presentation layer needs. A Store
// is immutable after construction: a new upload replaces it wholesale.
package store

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"mpesalytics/engine/internal/dateutils"
	"mpesalytics/engine/internal/models"
)

// Store is the in-memory structured table of classified transactions for
// one upload session, always held in chronological ascending order.
type Store struct {
	transactions []models.Transaction
	warnings     models.Warnings
}

// Aggregate summarizes one group of transactions.
type Aggregate struct {
	Count          int             `json:"count"`
	TotalPaidIn    decimal.Decimal `json:"total_paid_in"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
}

// CategorySummaryRow is one line of the per-category overview: the
// statistics the presentation layer renders per tab.
type CategorySummaryRow struct {
	Category             models.Category `json:"category"`
	Count                int             `json:"count"`
	TotalPaidIn          decimal.Decimal `json:"total_paid_in"`
	TotalWithdrawn       decimal.Decimal `json:"total_withdrawn"`
	UniqueCounterparties int             `json:"unique_counterparties"`
	From                 time.Time       `json:"from"`
	To                   time.Time       `json:"to"`
}

// New constructs a Store over classified transactions. The slice is copied
// so later caller mutations cannot reach the store.
func New(transactions []models.Transaction, warnings models.Warnings) *Store {
	copied := make([]models.Transaction, len(transactions))
	copy(copied, transactions)
	return &Store{
		transactions: copied,
		warnings:     warnings,
	}
}

// All returns every transaction in chronological order.
func (s *Store) All() []models.Transaction {
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.transactions)
}

// Warnings returns the parse-warning summary for this statement.
func (s *Store) Warnings() models.Warnings {
	return s.warnings
}

// Filter returns the ordered subsequence whose timestamp falls within
// [from, to] inclusive. An empty range yields an empty sequence, not an
// error.
func (s *Store) Filter(from, to time.Time) []models.Transaction {
	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.Timestamp.Before(from) || tx.Timestamp.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// GroupByCategory maps each category to its transactions, preserving
// chronological order within each group.
func (s *Store) GroupByCategory() map[models.Category][]models.Transaction {
	groups := make(map[models.Category][]models.Transaction)
	for _, tx := range s.transactions {
		groups[tx.Category] = append(groups[tx.Category], tx)
	}
	return groups
}

// GroupByCounterparty maps each counterparty to its transactions,
// preserving chronological order within each group.
func (s *Store) GroupByCounterparty() map[string][]models.Transaction {
	groups := make(map[string][]models.Transaction)
	for _, tx := range s.transactions {
		groups[tx.Counterparty] = append(groups[tx.Counterparty], tx)
	}
	return groups
}

// AggregateGroup computes count and paid-in/withdrawn sums for one group.
func AggregateGroup(group []models.Transaction) Aggregate {
	agg := Aggregate{
		TotalPaidIn:    decimal.Zero,
		TotalWithdrawn: decimal.Zero,
	}
	for _, tx := range group {
		agg.Count++
		agg.TotalPaidIn = agg.TotalPaidIn.Add(tx.PaidIn)
		agg.TotalWithdrawn = agg.TotalWithdrawn.Add(tx.Withdrawn)
	}
	return agg
}

// CategorySummary returns one row per category that has transactions, in
// the fixed presentation order of the category set.
func (s *Store) CategorySummary() []CategorySummaryRow {
	groups := s.GroupByCategory()

	var rows []CategorySummaryRow
	for _, category := range models.AllCategories {
		group := groups[category]
		if len(group) == 0 {
			continue
		}
		agg := AggregateGroup(group)
		counterparties := make(map[string]struct{})
		for _, tx := range group {
			if tx.Counterparty != "" {
				counterparties[tx.Counterparty] = struct{}{}
			}
		}
		rows = append(rows, CategorySummaryRow{
			Category:             category,
			Count:                agg.Count,
			TotalPaidIn:          agg.TotalPaidIn,
			TotalWithdrawn:       agg.TotalWithdrawn,
			UniqueCounterparties: len(counterparties),
			From:                 group[0].Timestamp,
			To:                   group[len(group)-1].Timestamp,
		})
	}
	return rows
}

// MonthlyTotals aggregates paid-in/withdrawn per statement month, with
// keys like "July_25", returned in chronological order of first
// occurrence.
func (s *Store) MonthlyTotals() ([]string, map[string]Aggregate) {
	var order []string
	totals := make(map[string]Aggregate)
	for _, tx := range s.transactions {
		key := dateutils.MonthKey(tx.Timestamp)
		agg, seen := totals[key]
		if !seen {
			order = append(order, key)
			agg = Aggregate{TotalPaidIn: decimal.Zero, TotalWithdrawn: decimal.Zero}
		}
		agg.Count++
		agg.TotalPaidIn = agg.TotalPaidIn.Add(tx.PaidIn)
		agg.TotalWithdrawn = agg.TotalWithdrawn.Add(tx.Withdrawn)
		totals[key] = agg
	}
	return order, totals
}

// TopCounterparties returns the n counterparties moving the most money in
// the given direction, largest first.
func (s *Store) TopCounterparties(n int, direction models.Direction) []string {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range s.transactions {
		if tx.Counterparty == "" || tx.Direction() != direction {
			continue
		}
		sums[tx.Counterparty] = sums[tx.Counterparty].Add(tx.Amount())
	}

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if !sums[names[i]].Equal(sums[names[j]]) {
			return sums[names[i]].GreaterThan(sums[names[j]])
		}
		return names[i] < names[j]
	})

	if n > 0 && len(names) > n {
		names = names[:n]
	}
	return names
}

// DateRange returns the first and last timestamps held by the store, or
// zero times when the store is empty.
func (s *Store) DateRange() (time.Time, time.Time) {
	if len(s.transactions) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.transactions[0].Timestamp, s.transactions[len(s.transactions)-1].Timestamp
}
