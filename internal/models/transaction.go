package models

import "time"

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one income or expense record. CategoryID may reference a
// category that no longer exists; readers must render such entries as
// "uncategorized" rather than failing.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      float64
	Type        TransactionType
	CategoryID  string
	Description string
}
