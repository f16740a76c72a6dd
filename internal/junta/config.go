package junta

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/currency"
	"github.com/mmynk/familyfinance/internal/models"
)

// DefaultCurrency is used when a configuration does not name one.
const DefaultCurrency = "PEN"

// Config is what a member submits to start a junta.
type Config struct {
	Name              string
	DateRange         models.DateRange
	DailyContribution decimal.Decimal
	Currency          string
	Participants      []string
}

// Validate checks cfg without building anything.
// The roster must have exactly one participant per day of the range.
func Validate(cfg Config) error {
	r := cfg.DateRange
	if r.From.IsZero() || r.To.IsZero() || r.To.Before(r.From) {
		return invalid("dateRange", ErrInvalidRange)
	}
	if !cfg.DailyContribution.IsPositive() {
		return invalid("dailyContribution", ErrInvalidContribution)
	}
	if code := strings.TrimSpace(cfg.Currency); code != "" && !currency.ValidCode(code) {
		return invalidf("currency", ErrInvalidCurrency, "got %q", cfg.Currency)
	}
	if len(cfg.Participants) == 0 {
		return invalid("participants", ErrNoParticipants)
	}
	for i, name := range cfg.Participants {
		if strings.TrimSpace(name) == "" {
			return invalidf("participants", ErrEmptyName, "participant %d", i+1)
		}
	}
	if days := r.DayCount(); len(cfg.Participants) != days {
		return invalidf("participants", ErrRosterMismatch,
			"%d participants for %d days", len(cfg.Participants), days)
	}
	return nil
}

// New validates cfg and builds an unassigned junta created by session.Member.
// ID and CreatedAt are left for the store to fill in.
func New(cfg Config, session models.Session) (*models.Junta, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	participants := make([]models.Participant, len(cfg.Participants))
	for i, name := range cfg.Participants {
		participants[i] = models.Participant{Name: strings.TrimSpace(name)}
	}

	code := strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if code == "" {
		code = DefaultCurrency
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = generateName(cfg.DateRange)
	}

	return &models.Junta{
		Name:              name,
		DateRange:         cfg.DateRange,
		DailyContribution: cfg.DailyContribution,
		Currency:          code,
		Participants:      participants,
		CreatedBy:         session.Member,
	}, nil
}

// generateName creates a title from the date range.
func generateName(r models.DateRange) string {
	from, to := r.From.Time(), r.To.Time()
	if from.Year() == to.Year() && from.Month() == to.Month() {
		return fmt.Sprintf("Junta %s %d-%d", from.Format("Jan"), from.Day(), to.Day())
	}
	return fmt.Sprintf("Junta %s - %s", from.Format("Jan 2"), to.Format("Jan 2, 2006"))
}
