package junta

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/models"
)

func cash(amount int64) PaymentInput {
	return PaymentInput{Amount: decimal.NewFromInt(amount), Method: models.MethodCash}
}

func TestLedger(t *testing.T) {
	day := rangeOf(3).From

	t.Run("last write wins", func(t *testing.T) {
		l := NewLedger()
		if _, err := l.RecordPayment(day, cash(10)); err != nil {
			t.Fatalf("first RecordPayment failed: %v", err)
		}
		second := PaymentInput{
			Amount:    decimal.NewFromInt(7),
			Method:    models.MethodMobileTransfer,
			Recipient: "Pilar",
		}
		if _, err := l.RecordPayment(day, second); err != nil {
			t.Fatalf("second RecordPayment failed: %v", err)
		}

		got, ok := l.GetPayment(day)
		if !ok {
			t.Fatal("expected a payment")
		}
		if !got.Amount.Equal(decimal.NewFromInt(7)) || got.Method != models.MethodMobileTransfer || got.Recipient != "Pilar" {
			t.Errorf("got %+v, want the second write", got)
		}
		if !got.Paid {
			t.Error("recorded payment is not marked paid")
		}
		if got.Revision != 2 {
			t.Errorf("revision = %d, want 2", got.Revision)
		}
		if l.Len() != 1 {
			t.Errorf("ledger has %d days, want 1", l.Len())
		}
	})

	t.Run("never recorded day is absent", func(t *testing.T) {
		l := NewLedger()
		p, ok := l.GetPayment(day)
		if ok {
			t.Errorf("expected absent, got %+v", p)
		}
		if p.Paid || !p.Amount.IsZero() {
			t.Errorf("absent lookup returned a non-zero record: %+v", p)
		}
	})

	t.Run("over and under payment are accepted", func(t *testing.T) {
		l := NewLedger()
		for i, amount := range []int64{0, 3, 250} {
			if _, err := l.RecordPayment(day.AddDays(i), cash(amount)); err != nil {
				t.Errorf("amount %d rejected: %v", amount, err)
			}
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		l := NewLedger()
		cases := []struct {
			in   PaymentInput
			want error
		}{
			{cash(-1), ErrInvalidAmount},
			{PaymentInput{Amount: decimal.NewFromInt(1), Method: "cheque"}, ErrInvalidMethod},
			{PaymentInput{Amount: decimal.NewFromInt(1), Method: models.MethodMobileTransfer}, ErrRecipientRequired},
			{PaymentInput{Amount: decimal.NewFromInt(1), Method: models.MethodCash, Recipient: "Pilar"}, ErrUnexpectedRecipient},
		}
		for _, c := range cases {
			if _, err := l.RecordPayment(day, c.in); !errors.Is(err, c.want) {
				t.Errorf("RecordPayment(%+v) error = %v, want %v", c.in, err, c.want)
			}
		}
		if l.Len() != 0 {
			t.Errorf("rejected payments were stored: %d", l.Len())
		}
	})

	t.Run("compare and swap", func(t *testing.T) {
		l := NewLedger()
		first, err := l.RecordPaymentIf(day, cash(10), 0)
		if err != nil {
			t.Fatalf("create with expected revision 0 failed: %v", err)
		}
		if _, err := l.RecordPaymentIf(day, cash(11), 0); !errors.Is(err, ErrRevisionConflict) {
			t.Errorf("stale create: got %v, want ErrRevisionConflict", err)
		}
		if _, err := l.RecordPaymentIf(day, cash(12), first.Revision); err != nil {
			t.Errorf("update at current revision failed: %v", err)
		}
		got, _ := l.GetPayment(day)
		if !got.Amount.Equal(decimal.NewFromInt(12)) {
			t.Errorf("amount = %s, want 12", got.Amount)
		}
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		l := NewLedger()
		l.RecordPayment(day, cash(10))
		snap := l.Snapshot()
		delete(snap, day.String())
		if _, ok := l.GetPayment(day); !ok {
			t.Error("mutating the snapshot changed the ledger")
		}
	})
}

func TestLedgerConcurrentCompareAndSwap(t *testing.T) {
	l := NewLedger()
	day := rangeOf(1).From

	const writers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.RecordPaymentIf(day, cash(10), 0); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d writers created the same day, want exactly 1", wins)
	}
}

func TestCheckPayment(t *testing.T) {
	r := rangeOf(3)
	j := &models.Junta{DateRange: r, Participants: roster("A", "B", "C")}
	collectors := []string{"Sthefany", "Matias", "Pilar"}

	if err := CheckPayment(j, r.From, cash(10), collectors); !errors.Is(err, ErrNotAssigned) {
		t.Errorf("unassigned junta: got %v, want ErrNotAssigned", err)
	}

	assigned, _ := AssignDates(j, models.StrategySequential, nil)
	assigned.AssignedAt = 1

	if err := CheckPayment(assigned, r.From, cash(10), collectors); err != nil {
		t.Errorf("valid payment rejected: %v", err)
	}
	if err := CheckPayment(assigned, r.To.AddDays(1), cash(10), collectors); !errors.Is(err, ErrDayOutOfRange) {
		t.Errorf("day after range: got %v, want ErrDayOutOfRange", err)
	}

	mobile := PaymentInput{Amount: decimal.NewFromInt(10), Method: models.MethodMobileTransfer, Recipient: "matias"}
	if err := CheckPayment(assigned, r.From, mobile, collectors); err != nil {
		t.Errorf("collector match should ignore case: %v", err)
	}
	mobile.Recipient = "Sebastian"
	if err := CheckPayment(assigned, r.From, mobile, collectors); !errors.Is(err, ErrUnknownRecipient) {
		t.Errorf("unknown collector: got %v, want ErrUnknownRecipient", err)
	}
	if err := CheckPayment(assigned, r.From, mobile, nil); err != nil {
		t.Errorf("empty collector list should accept any recipient: %v", err)
	}
}
