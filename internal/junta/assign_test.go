package junta

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mmynk/familyfinance/internal/models"
)

func rangeOf(days int) models.DateRange {
	from := models.NewDate(2024, time.March, 1)
	return models.DateRange{From: from, To: from.AddDays(days - 1)}
}

func roster(names ...string) []models.Participant {
	out := make([]models.Participant, len(names))
	for i, n := range names {
		out[i] = models.Participant{Name: n}
	}
	return out
}

// checkBijection fails the test unless every day of r is held by exactly one
// participant and every participant holds exactly one day of r.
func checkBijection(t *testing.T, r models.DateRange, assigned []models.Participant) {
	t.Helper()
	seen := make(map[string]string)
	for _, p := range assigned {
		if p.AssignedDate == nil {
			t.Fatalf("participant %s has no assigned date", p.Name)
		}
		if !r.Contains(*p.AssignedDate) {
			t.Fatalf("participant %s assigned %s outside range", p.Name, p.AssignedDate)
		}
		key := p.AssignedDate.String()
		if other, dup := seen[key]; dup {
			t.Fatalf("day %s assigned to both %s and %s", key, other, p.Name)
		}
		seen[key] = p.Name
	}
	for _, day := range Days(r) {
		if _, ok := seen[day.String()]; !ok {
			t.Fatalf("day %s left unassigned", day)
		}
	}
}

func TestDays(t *testing.T) {
	r := models.DateRange{
		From: models.NewDate(2024, time.February, 27),
		To:   models.NewDate(2024, time.March, 2),
	}
	days := Days(r)
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(days) != len(want) {
		t.Fatalf("Days() returned %d days, want %d", len(days), len(want))
	}
	for i, d := range days {
		if d.String() != want[i] {
			t.Errorf("day %d = %s, want %s", i, d, want[i])
		}
	}
}

func TestAssign(t *testing.T) {
	r := rangeOf(5)
	people := roster("Sebastian", "Ariana", "Sthefany", "Tomas", "Pilar")

	for _, strategy := range []models.Strategy{models.StrategySequential, models.StrategyRandom} {
		t.Run(string(strategy)+" is a bijection", func(t *testing.T) {
			assigned, err := Assign(r, people, strategy, rand.New(rand.NewPCG(1, 2)))
			if err != nil {
				t.Fatalf("Assign failed: %v", err)
			}
			if len(assigned) != len(people) {
				t.Fatalf("got %d participants, want %d", len(assigned), len(people))
			}
			for i := range people {
				if assigned[i].Name != people[i].Name {
					t.Errorf("participant order changed at %d: got %s, want %s", i, assigned[i].Name, people[i].Name)
				}
			}
			checkBijection(t, r, assigned)
		})
	}

	t.Run("input roster is not modified", func(t *testing.T) {
		if _, err := Assign(r, people, models.StrategyRandom, nil); err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		for _, p := range people {
			if p.AssignedDate != nil {
				t.Errorf("input participant %s was assigned in place", p.Name)
			}
		}
	})

	t.Run("sequential follows input order", func(t *testing.T) {
		assigned, err := Assign(r, people, models.StrategySequential, nil)
		if err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		for i, p := range assigned {
			want := r.From.AddDays(i)
			if !p.AssignedDate.Equal(want) {
				t.Errorf("%s assigned %s, want %s", p.Name, p.AssignedDate, want)
			}
		}
	})

	t.Run("sequential is deterministic", func(t *testing.T) {
		first, _ := Assign(r, people, models.StrategySequential, nil)
		for run := 0; run < 10; run++ {
			again, err := Assign(r, people, models.StrategySequential, nil)
			if err != nil {
				t.Fatalf("Assign failed: %v", err)
			}
			for i := range first {
				if !first[i].AssignedDate.Equal(*again[i].AssignedDate) {
					t.Fatalf("run %d: %s got %s, first run gave %s",
						run, again[i].Name, again[i].AssignedDate, first[i].AssignedDate)
				}
			}
		}
	})

	t.Run("mismatched roster is rejected", func(t *testing.T) {
		for _, n := range []int{4, 6} {
			names := []string{"A", "B", "C", "D", "E", "F"}[:n]
			_, err := Assign(r, roster(names...), models.StrategyRandom, nil)
			if !errors.Is(err, ErrRosterMismatch) {
				t.Errorf("%d participants over 5 days: got %v, want ErrRosterMismatch", n, err)
			}
			if !IsValidation(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
		}
	})

	t.Run("unknown strategy is rejected", func(t *testing.T) {
		_, err := Assign(r, people, models.Strategy("alphabetical"), nil)
		if !errors.Is(err, ErrUnknownStrategy) {
			t.Errorf("got %v, want ErrUnknownStrategy", err)
		}
	})
}

func TestAssignRandomCoverage(t *testing.T) {
	const runs = 1000
	r := rangeOf(5)
	people := roster("A", "B", "C", "D", "E")
	rng := rand.New(rand.NewPCG(42, 7))

	// counts[participant][dayOffset]
	counts := make(map[string][]int)
	for _, p := range people {
		counts[p.Name] = make([]int, 5)
	}

	for run := 0; run < runs; run++ {
		assigned, err := Assign(r, people, models.StrategyRandom, rng)
		if err != nil {
			t.Fatalf("run %d: Assign failed: %v", run, err)
		}
		checkBijection(t, r, assigned)
		for _, p := range assigned {
			counts[p.Name][r.From.DaysUntil(*p.AssignedDate)]++
		}
	}

	// Each pairing is expected runs/5 = 200 times. 120..280 is more than six
	// standard deviations either side.
	for name, perDay := range counts {
		for offset, n := range perDay {
			if n < 120 || n > 280 {
				t.Errorf("%s got day +%d %d times out of %d, want about %d", name, offset, n, runs, runs/5)
			}
		}
	}
}

func TestAssignDates(t *testing.T) {
	j := &models.Junta{
		DateRange:    rangeOf(3),
		Participants: roster("A", "B", "C"),
	}

	assigned, err := AssignDates(j, models.StrategySequential, nil)
	if err != nil {
		t.Fatalf("AssignDates failed: %v", err)
	}
	if assigned.Strategy != models.StrategySequential {
		t.Errorf("strategy = %q, want sequential", assigned.Strategy)
	}
	if j.Participants[0].AssignedDate != nil {
		t.Error("AssignDates modified the original junta")
	}

	assigned.AssignedAt = time.Now().Unix()
	if _, err := AssignDates(assigned, models.StrategyRandom, nil); !errors.Is(err, ErrAlreadyAssigned) {
		t.Errorf("second assignment: got %v, want ErrAlreadyAssigned", err)
	}
}

func TestResponsible(t *testing.T) {
	r := rangeOf(3)
	assigned, _ := Assign(r, roster("A", "B", "C"), models.StrategySequential, nil)

	p, ok := Responsible(assigned, r.From.AddDays(1))
	if !ok || p.Name != "B" {
		t.Errorf("Responsible(day 2) = %v, %v; want B, true", p.Name, ok)
	}
	if _, ok := Responsible(assigned, r.To.AddDays(1)); ok {
		t.Error("expected no participant for a day outside the range")
	}
	if _, ok := Responsible(roster("A", "B", "C"), r.From); ok {
		t.Error("expected no participant before assignment")
	}
}
