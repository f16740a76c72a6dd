package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/calculator"
	"github.com/mmynk/familyfinance/internal/currency"
	"github.com/mmynk/familyfinance/internal/junta"
	"github.com/mmynk/familyfinance/internal/models"
	api "github.com/mmynk/familyfinance/pkg/api"
)

// display formats amounts for one currency and locale.
type display struct {
	currency string
	locale   string
}

func (d display) format(amount decimal.Decimal) string {
	return currency.FormatOrPlain(amount, d.currency, d.locale)
}

func parseDate(field, s string) (models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// parseOptionalDate returns the zero Date for an empty string.
func parseOptionalDate(field, s string) (models.Date, error) {
	if strings.TrimSpace(s) == "" {
		return models.Date{}, nil
	}
	return parseDate(field, s)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid amount %q", field, s)
	}
	return d, nil
}

func toAPITransaction(t *models.Transaction, d display) *api.Transaction {
	return &api.Transaction{
		Id:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount.String(),
		AmountDisplay: d.format(t.Amount),
		Category:      t.Category,
		Date:          t.Date.String(),
		Person:        t.Person,
		Description:   t.Description,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toAPITransactions(txns []*models.Transaction, d display) []*api.Transaction {
	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t, d)
	}
	return out
}

func toAPIJunta(j *models.Junta) *api.Junta {
	participants := make([]*api.Participant, len(j.Participants))
	for i, p := range j.Participants {
		participants[i] = &api.Participant{Name: p.Name}
		if p.AssignedDate != nil {
			participants[i].AssignedDate = p.AssignedDate.String()
		}
	}
	return &api.Junta{
		Id:                j.ID,
		Name:              j.Name,
		From:              j.DateRange.From.String(),
		To:                j.DateRange.To.String(),
		DailyContribution: j.DailyContribution.String(),
		Currency:          j.Currency,
		Participants:      participants,
		Strategy:          string(j.Strategy),
		Assigned:          j.Assigned(),
		CreatedBy:         j.CreatedBy,
		CreatedAt:         j.CreatedAt,
		AssignedAt:        j.AssignedAt,
	}
}

func toAPIPayment(p models.Payment, d display) *api.Payment {
	return &api.Payment{
		Day:           p.Day.String(),
		Paid:          p.Paid,
		Amount:        p.Amount.String(),
		AmountDisplay: d.format(p.Amount),
		Method:        string(p.Method),
		Recipient:     p.Recipient,
		RecordedBy:    p.RecordedBy,
		RecordedAt:    p.RecordedAt,
		Revision:      p.Revision,
	}
}

func toAPIDays(days []junta.DayStatus, today models.Date, d display) []*api.DayStatus {
	out := make([]*api.DayStatus, len(days))
	for i, day := range days {
		out[i] = &api.DayStatus{
			Day:         day.Day.String(),
			Responsible: day.Responsible,
			Paid:        day.Paid(),
			IsToday:     day.Day.Equal(today),
		}
		if day.Payment != nil {
			out[i].Payment = toAPIPayment(*day.Payment, d)
		}
	}
	return out
}

func toAPISettlement(s calculator.Settlement, d display) *api.Settlement {
	methods := make(map[string]int32, len(s.MethodBreakdown))
	for m, n := range s.MethodBreakdown {
		methods[string(m)] = int32(n)
	}
	collectors := make(map[string]string, len(s.CollectorTotals))
	for name, amount := range s.CollectorTotals {
		collectors[name] = amount.String()
	}
	compliance := make([]*api.Compliance, len(s.Compliance))
	for i, c := range s.Compliance {
		compliance[i] = &api.Compliance{
			Participant: c.Participant,
			Status:      string(c.Status),
			Amount:      c.Amount.String(),
		}
		if c.Day != nil {
			compliance[i].Day = c.Day.String()
		}
	}

	return &api.Settlement{
		Currency:              d.currency,
		TotalCollected:        s.TotalCollected.String(),
		ExpectedByRoster:      s.ExpectedByRoster.String(),
		ExpectedByPaidEntries: s.ExpectedByPaidEntries.String(),
		Balance:               s.Balance.String(),
		Display: map[string]string{
			"totalCollected":        d.format(s.TotalCollected),
			"expectedByRoster":      d.format(s.ExpectedByRoster),
			"expectedByPaidEntries": d.format(s.ExpectedByPaidEntries),
			"balance":               d.format(s.Balance),
		},
		PaidCount:       int32(s.PaidCount),
		PendingCount:    int32(s.PendingCount),
		MethodBreakdown: methods,
		CollectorTotals: collectors,
		Compliance:      compliance,
	}
}
