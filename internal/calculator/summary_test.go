package calculator

import (
	"testing"

	"github.com/mmynk/familyfinance/internal/models"
)

func TestSummarize(t *testing.T) {
	txn := func(typ models.TransactionType, amount, category, person string) models.Transaction {
		return models.Transaction{Type: typ, Amount: dec(amount), Category: category, Person: person}
	}

	tests := []struct {
		name         string
		txns         []models.Transaction
		validateFunc func(t *testing.T, s TransactionSummary)
	}{
		{
			name: "income and expenses",
			txns: []models.Transaction{
				txn(models.TransactionIncome, "2500", "Ingresos", "Tomas"),
				txn(models.TransactionExpense, "120.50", "Comida", "Tomas"),
				txn(models.TransactionExpense, "80", "Transporte", "Pilar"),
				txn(models.TransactionExpense, "30", "Comida", "Pilar"),
			},
			validateFunc: func(t *testing.T, s TransactionSummary) {
				if !s.TotalIncome.Equal(dec("2500")) {
					t.Errorf("TotalIncome = %s, want 2500", s.TotalIncome)
				}
				if !s.TotalExpense.Equal(dec("230.50")) {
					t.Errorf("TotalExpense = %s, want 230.50", s.TotalExpense)
				}
				if !s.Balance.Equal(dec("2269.50")) {
					t.Errorf("Balance = %s, want 2269.50", s.Balance)
				}
				if s.Count != 4 {
					t.Errorf("Count = %d, want 4", s.Count)
				}

				if len(s.SpendingByCategory) != 2 {
					t.Fatalf("got %d categories, want 2 (income excluded)", len(s.SpendingByCategory))
				}
				if s.SpendingByCategory[0].Category != "Comida" || !s.SpendingByCategory[0].Amount.Equal(dec("150.50")) {
					t.Errorf("largest category = %+v, want Comida 150.50", s.SpendingByCategory[0])
				}

				if len(s.ByPerson) != 2 || s.ByPerson[0].Person != "Pilar" {
					t.Fatalf("ByPerson = %+v, want Pilar then Tomas", s.ByPerson)
				}
				if !s.ByPerson[1].Income.Equal(dec("2500")) || !s.ByPerson[1].Expense.Equal(dec("120.50")) {
					t.Errorf("Tomas = %+v", s.ByPerson[1])
				}
			},
		},
		{
			name: "empty list",
			txns: nil,
			validateFunc: func(t *testing.T, s TransactionSummary) {
				if !s.Balance.IsZero() || s.Count != 0 || len(s.SpendingByCategory) != 0 {
					t.Errorf("expected zero summary, got %+v", s)
				}
			},
		},
		{
			name: "equal categories sort by name",
			txns: []models.Transaction{
				txn(models.TransactionExpense, "10", "Salud", "Ana"),
				txn(models.TransactionExpense, "10", "Otros", "Ana"),
			},
			validateFunc: func(t *testing.T, s TransactionSummary) {
				if s.SpendingByCategory[0].Category != "Otros" {
					t.Errorf("first category = %s, want Otros", s.SpendingByCategory[0].Category)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Summarize(tt.txns))
		})
	}
}
