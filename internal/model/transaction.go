// Package model defines the core budget entities.
package model

import "time"

// TransactionType indicates whether a transaction adds or removes money.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "expense"
)

// Transaction represents a single recorded income or expense event.
// Records are immutable after creation; changes are modeled as
// create or delete, never in-place mutation.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	CategoryID  string          `json:"categoryId,omitempty"` // expense only; weak reference, may dangle
	Amount      float64         `json:"amount"`               // always an absolute value
}

// IsIncome reports whether the transaction adds money.
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction removes money.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// DisplayDescription returns the description, substituting a default
// label when the user left it empty.
func (t *Transaction) DisplayDescription() string {
	if t.Description != "" {
		return t.Description
	}
	if t.Type == TypeIncome {
		return "Income"
	}
	return "Expense"
}
