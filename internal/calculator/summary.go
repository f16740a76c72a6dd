package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/models"
)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// PersonTotal is what one family member brought in and spent.
type PersonTotal struct {
	Person  string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// TransactionSummary aggregates a list of transactions for the dashboard.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal // TotalIncome - TotalExpense
	Count        int

	// SpendingByCategory covers expenses only, largest first.
	SpendingByCategory []CategoryTotal

	// ByPerson is sorted by person name.
	ByPerson []PersonTotal
}

// Summarize computes totals over txns.
func Summarize(txns []models.Transaction) TransactionSummary {
	summary := TransactionSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Count:        len(txns),
	}

	byCategory := make(map[string]decimal.Decimal)
	byPerson := make(map[string]*PersonTotal)

	for _, t := range txns {
		person, exists := byPerson[t.Person]
		if !exists {
			person = &PersonTotal{Person: t.Person, Income: decimal.Zero, Expense: decimal.Zero}
			byPerson[t.Person] = person
		}

		switch t.Type {
		case models.TransactionIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			person.Income = person.Income.Add(t.Amount)
		case models.TransactionExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			person.Expense = person.Expense.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)

	for category, amount := range byCategory {
		summary.SpendingByCategory = append(summary.SpendingByCategory, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(summary.SpendingByCategory, func(i, j int) bool {
		a, b := summary.SpendingByCategory[i], summary.SpendingByCategory[j]
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp > 0
		}
		return a.Category < b.Category
	})

	for _, p := range byPerson {
		summary.ByPerson = append(summary.ByPerson, *p)
	}
	sort.Slice(summary.ByPerson, func(i, j int) bool {
		return summary.ByPerson[i].Person < summary.ByPerson[j].Person
	})

	return summary
}
