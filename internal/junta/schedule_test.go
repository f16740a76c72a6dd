package junta

import (
	"testing"

	"github.com/mmynk/familyfinance/internal/models"
)

func TestSchedule(t *testing.T) {
	r := rangeOf(3)
	j := &models.Junta{DateRange: r, Participants: roster("A", "B", "C")}
	j, _ = AssignDates(j, models.StrategySequential, nil)

	l := NewLedger()
	l.RecordPayment(r.From.AddDays(1), cash(10))

	rows := Schedule(j, l.Snapshot())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	want := []struct {
		responsible string
		paid        bool
	}{{"A", false}, {"B", true}, {"C", false}}

	for i, row := range rows {
		if !row.Day.Equal(r.From.AddDays(i)) {
			t.Errorf("row %d day = %s, want %s", i, row.Day, r.From.AddDays(i))
		}
		if row.Responsible != want[i].responsible {
			t.Errorf("row %d responsible = %q, want %q", i, row.Responsible, want[i].responsible)
		}
		if row.Paid() != want[i].paid {
			t.Errorf("row %d paid = %v, want %v", i, row.Paid(), want[i].paid)
		}
	}
}
