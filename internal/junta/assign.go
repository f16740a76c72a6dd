package junta

import (
	"math/rand/v2"

	"github.com/mmynk/familyfinance/internal/models"
)

// Days enumerates every day of r in calendar order.
func Days(r models.DateRange) []models.Date {
	n := r.DayCount()
	days := make([]models.Date, n)
	for i := range n {
		days[i] = r.From.AddDays(i)
	}
	return days
}

// Assign returns a copy of participants in which every day of r is given to
// exactly one participant. The input slice is not modified.
//
// Sequential gives participant i the day r.From+i. Random walks the roster in
// order and, for each participant, removes a uniformly chosen day from the days
// still available. rng may be nil to use the global source.
//
// A roster whose length differs from the number of days is rejected.
func Assign(r models.DateRange, participants []models.Participant, strategy models.Strategy, rng *rand.Rand) ([]models.Participant, error) {
	days := Days(r)
	if len(days) == 0 {
		return nil, invalid("dateRange", ErrInvalidRange)
	}
	if len(participants) != len(days) {
		return nil, invalidf("participants", ErrRosterMismatch,
			"%d participants for %d days", len(participants), len(days))
	}

	assigned := make([]models.Participant, len(participants))
	switch strategy {
	case models.StrategySequential:
		for i, p := range participants {
			day := days[i]
			assigned[i] = models.Participant{Name: p.Name, AssignedDate: &day}
		}

	case models.StrategyRandom:
		available := days
		for i, p := range participants {
			idx := intN(rng, len(available))
			day := available[idx]
			available = append(available[:idx:idx], available[idx+1:]...)
			assigned[i] = models.Participant{Name: p.Name, AssignedDate: &day}
		}

	default:
		return nil, invalidf("strategy", ErrUnknownStrategy, "got %q", strategy)
	}

	return assigned, nil
}

// AssignDates returns a copy of j with its roster assigned using strategy.
// A junta can be assigned only once.
func AssignDates(j *models.Junta, strategy models.Strategy, rng *rand.Rand) (*models.Junta, error) {
	if j.Assigned() {
		return nil, ErrAlreadyAssigned
	}
	participants, err := Assign(j.DateRange, j.Participants, strategy, rng)
	if err != nil {
		return nil, err
	}
	out := *j
	out.Participants = participants
	out.Strategy = strategy
	return &out, nil
}

// Responsible returns the participant assigned to day. With duplicate names
// or an unassigned roster the first match wins, or ok is false.
func Responsible(participants []models.Participant, day models.Date) (models.Participant, bool) {
	for _, p := range participants {
		if p.AssignedDate != nil && p.AssignedDate.Equal(day) {
			return p, true
		}
	}
	return models.Participant{}, false
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
