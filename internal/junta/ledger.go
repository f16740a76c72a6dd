package junta

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/models"
)

// PaymentInput is a contribution as entered by a member.
type PaymentInput struct {
	Amount     decimal.Decimal
	Method     models.PaymentMethod
	Recipient  string
	RecordedBy string
}

// Validate checks the shape of a payment independent of any junta.
func (in PaymentInput) Validate() error {
	if in.Amount.IsNegative() {
		return invalid("amount", ErrInvalidAmount)
	}
	if !in.Method.Valid() {
		return invalidf("method", ErrInvalidMethod, "got %q", in.Method)
	}
	hasRecipient := strings.TrimSpace(in.Recipient) != ""
	if in.Method == models.MethodMobileTransfer && !hasRecipient {
		return invalid("recipient", ErrRecipientRequired)
	}
	if in.Method != models.MethodMobileTransfer && hasRecipient {
		return invalid("recipient", ErrUnexpectedRecipient)
	}
	return nil
}

// CheckPayment validates a payment against j: dates must be assigned, day must
// be inside the range, and a mobile-transfer recipient must be one of collectors.
// An empty collectors list accepts any recipient.
func CheckPayment(j *models.Junta, day models.Date, in PaymentInput, collectors []string) error {
	if !j.Assigned() {
		return ErrNotAssigned
	}
	if day.IsZero() || !j.DateRange.Contains(day) {
		return invalidf("day", ErrDayOutOfRange, "%s not in %s..%s", day, j.DateRange.From, j.DateRange.To)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	if in.Method == models.MethodMobileTransfer && len(collectors) > 0 {
		if !slices.ContainsFunc(collectors, func(c string) bool { return strings.EqualFold(c, in.Recipient) }) {
			return invalidf("recipient", ErrUnknownRecipient, "got %q", in.Recipient)
		}
	}
	return nil
}

// Ledger maps junta days to the payment recorded for them.
// It is safe for concurrent use; writes to one day are serialized.
type Ledger struct {
	mu       sync.Mutex
	payments map[string]models.Payment
	now      func() time.Time
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		payments: make(map[string]models.Payment),
		now:      time.Now,
	}
}

// LedgerFrom loads previously recorded payments into a new ledger.
func LedgerFrom(payments []models.Payment) *Ledger {
	l := NewLedger()
	for _, p := range payments {
		l.payments[p.Day.String()] = p
	}
	return l
}

// RecordPayment stores a paid record for day, replacing any earlier one.
// The last write wins; no history is kept.
func (l *Ledger) RecordPayment(day models.Date, in PaymentInput) (models.Payment, error) {
	return l.record(day, in, nil)
}

// RecordPaymentIf is RecordPayment guarded by the revision the caller last saw.
// expectedRevision 0 means the caller expects no payment for the day yet.
func (l *Ledger) RecordPaymentIf(day models.Date, in PaymentInput, expectedRevision int64) (models.Payment, error) {
	return l.record(day, in, &expectedRevision)
}

func (l *Ledger) record(day models.Date, in PaymentInput, expectedRevision *int64) (models.Payment, error) {
	if day.IsZero() {
		return models.Payment{}, invalid("day", ErrDayOutOfRange)
	}
	if err := in.Validate(); err != nil {
		return models.Payment{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := day.String()
	current := l.payments[key]
	if expectedRevision != nil && current.Revision != *expectedRevision {
		return models.Payment{}, ErrRevisionConflict
	}

	p := models.Payment{
		Day:        day,
		Paid:       true,
		Amount:     in.Amount,
		Method:     in.Method,
		Recipient:  strings.TrimSpace(in.Recipient),
		RecordedBy: in.RecordedBy,
		RecordedAt: l.now().Unix(),
		Revision:   current.Revision + 1,
	}
	l.payments[key] = p
	return p, nil
}

// GetPayment returns the payment for day. ok is false when the day was never
// recorded; no default record is made up.
func (l *Ledger) GetPayment(day models.Date) (p models.Payment, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok = l.payments[day.String()]
	return p, ok
}

// Snapshot returns a copy of every recorded payment keyed by YYYY-MM-DD.
func (l *Ledger) Snapshot() map[string]models.Payment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]models.Payment, len(l.payments))
	for k, v := range l.payments {
		out[k] = v
	}
	return out
}

// Len returns the number of recorded days.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.payments)
}
