package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Strategy selects how junta days are handed out to participants.
type Strategy string

const (
	// StrategySequential gives the participant at index i the day from+i.
	StrategySequential Strategy = "sequential"
	// StrategyRandom draws days uniformly at random without replacement.
	StrategyRandom Strategy = "random"
)

// PaymentMethod is how a junta contribution was paid.
type PaymentMethod string

const (
	MethodCash           PaymentMethod = "cash"
	MethodMobileTransfer PaymentMethod = "mobile-transfer"
	MethodBankTransfer   PaymentMethod = "bank-transfer"
)

// PaymentMethods lists every accepted method in display order.
var PaymentMethods = []PaymentMethod{MethodCash, MethodMobileTransfer, MethodBankTransfer}

// Valid reports whether m is one of PaymentMethods.
func (m PaymentMethod) Valid() bool {
	return slices.Contains(PaymentMethods, m)
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// DayCount returns the number of days in the range, or 0 if either end is unset
// or the range is inverted.
func (r DateRange) DayCount() int {
	if r.From.IsZero() || r.To.IsZero() || r.To.Before(r.From) {
		return 0
	}
	return r.From.DaysUntil(r.To) + 1
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day Date) bool {
	return !day.Before(r.From) && !day.After(r.To)
}

// Participant is one member of a junta roster.
type Participant struct {
	// Name identifies the participant. Uniqueness is not enforced;
	// duplicate names collide in lookups.
	Name string `json:"name"`

	// AssignedDate is the day this participant contributes on.
	// Nil until dates are assigned.
	AssignedDate *Date `json:"assignedDate"`
}

// Junta is a rotating group-savings pool.
type Junta struct {
	// ID is the unique identifier for the junta (UUID format).
	ID string `json:"id"`

	// Name is the display name; auto-generated from the roster when empty.
	Name string `json:"name"`

	// DateRange is the inclusive range of contribution days.
	DateRange DateRange `json:"dateRange"`

	// DailyContribution is the amount expected from each participant on their day.
	DailyContribution decimal.Decimal `json:"dailyContribution"`

	// Currency is the ISO 4217 code amounts are expressed in.
	Currency string `json:"currency"`

	// Participants is the roster in submission order.
	Participants []Participant `json:"participants"`

	// Strategy records how dates were assigned. Empty until assignment.
	Strategy Strategy `json:"strategy,omitempty"`

	// CreatedBy is the family member who created the junta.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the junta was created.
	CreatedAt int64 `json:"createdAt"`

	// AssignedAt is the Unix timestamp when dates were assigned, 0 before that.
	AssignedAt int64 `json:"assignedAt,omitempty"`
}

// Assigned reports whether the roster has been given its dates.
func (j *Junta) Assigned() bool {
	return j.AssignedAt != 0 && j.Strategy != ""
}

// Payment is a contribution recorded for one day of a junta.
type Payment struct {
	// Day is the junta day this payment covers.
	Day Date `json:"day"`

	// Paid is always true once a payment exists; there is no "mark unpaid".
	Paid bool `json:"paid"`

	Amount decimal.Decimal `json:"amount"`
	Method PaymentMethod   `json:"method"`

	// Recipient is the collector who received a mobile transfer.
	// Set for MethodMobileTransfer only.
	Recipient string `json:"recipient,omitempty"`

	RecordedBy string `json:"recordedBy,omitempty"`
	RecordedAt int64  `json:"recordedAt,omitempty"`

	// Revision starts at 1 and increases on every overwrite of the day.
	Revision int64 `json:"revision"`
}
