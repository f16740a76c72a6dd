package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/models"
)

// ComplianceStatus tells whether a participant has paid for their assigned day.
type ComplianceStatus string

const (
	StatusPaid    ComplianceStatus = "paid"
	StatusPending ComplianceStatus = "pending"
)

// ParticipantCompliance is one roster entry of a settlement.
type ParticipantCompliance struct {
	Participant string
	Day         *models.Date // nil when dates are not assigned yet
	Status      ComplianceStatus
	Amount      decimal.Decimal // what was recorded for Day, zero if pending
}

// Settlement is the aggregated view of a junta and its ledger.
type Settlement struct {
	TotalCollected decimal.Decimal

	// ExpectedByRoster counts one contribution per participant.
	ExpectedByRoster decimal.Decimal
	// ExpectedByPaidEntries counts one contribution per recorded payment.
	ExpectedByPaidEntries decimal.Decimal

	// Balance is TotalCollected - ExpectedByRoster. Negative means money is
	// still owed to the pool.
	Balance decimal.Decimal

	PaidCount    int
	PendingCount int

	MethodBreakdown map[models.PaymentMethod]int
	CollectorTotals map[string]decimal.Decimal

	// Compliance follows roster order.
	Compliance []ParticipantCompliance
}

// CalculateSettlement derives the settlement of j from the recorded payments,
// keyed by YYYY-MM-DD. Neither input is modified.
//
// Algorithm:
// - collected: sum of amounts over paid records
// - method breakdown: count of paid records per method
// - collectors: mobile-transfer amounts per recipient
// - compliance: each participant is paid iff their assigned day has a paid record
func CalculateSettlement(j *models.Junta, payments map[string]models.Payment) Settlement {
	s := Settlement{
		TotalCollected:  decimal.Zero,
		MethodBreakdown: make(map[models.PaymentMethod]int),
		CollectorTotals: make(map[string]decimal.Decimal),
		Compliance:      make([]ParticipantCompliance, 0, len(j.Participants)),
	}

	paidEntries := 0
	for _, p := range payments {
		if !p.Paid {
			continue
		}
		paidEntries++
		s.TotalCollected = s.TotalCollected.Add(p.Amount)
		s.MethodBreakdown[p.Method]++
		if p.Method == models.MethodMobileTransfer && p.Recipient != "" {
			s.CollectorTotals[p.Recipient] = s.CollectorTotals[p.Recipient].Add(p.Amount)
		}
	}

	for _, participant := range j.Participants {
		entry := ParticipantCompliance{
			Participant: participant.Name,
			Day:         participant.AssignedDate,
			Status:      StatusPending,
			Amount:      decimal.Zero,
		}
		if participant.AssignedDate != nil {
			if p, ok := payments[participant.AssignedDate.String()]; ok && p.Paid {
				entry.Status = StatusPaid
				entry.Amount = p.Amount
			}
		}
		if entry.Status == StatusPaid {
			s.PaidCount++
		} else {
			s.PendingCount++
		}
		s.Compliance = append(s.Compliance, entry)
	}

	contribution := j.DailyContribution
	s.ExpectedByRoster = contribution.Mul(decimal.NewFromInt(int64(len(j.Participants))))
	s.ExpectedByPaidEntries = contribution.Mul(decimal.NewFromInt(int64(paidEntries)))
	s.Balance = s.TotalCollected.Sub(s.ExpectedByRoster)

	return s
}

// ComplianceOf returns the status of the named participant, or false when the
// name is not on the roster. Duplicate names resolve to the first entry.
func (s Settlement) ComplianceOf(name string) (ComplianceStatus, bool) {
	for _, c := range s.Compliance {
		if c.Participant == name {
			return c.Status, true
		}
	}
	return "", false
}
