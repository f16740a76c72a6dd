package models

import "github.com/shopspring/decimal"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// CategorySuggestions is the curated list offered when recording a transaction.
// Categories are free text; any non-empty value is accepted.
var CategorySuggestions = []string{
	"Ingresos",
	"Comida",
	"Transporte",
	"Vivienda",
	"Entretenimiento",
	"Salud",
	"Otros",
}

// Transaction is an income or expense recorded by a family member.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`

	// Category is free text, usually one of CategorySuggestions.
	Category string `json:"category"`

	// Date is the day the money moved.
	Date Date `json:"date"`

	// Person is the family member the transaction belongs to.
	Person string `json:"person"`

	Description string `json:"description"`

	// CreatedBy is the family member who recorded the transaction.
	CreatedBy string `json:"createdBy"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
