package junta

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mmynk/familyfinance/internal/models"
)

// Snapshot is the junta and its ledger as handed to the reporting view.
// Dates travel as YYYY-MM-DD strings and amounts as decimal strings, so a
// decoded snapshot settles to exactly the same figures.
type Snapshot struct {
	Junta    models.Junta              `json:"junta"`
	Payments map[string]models.Payment `json:"payments"`
}

// EncodeSnapshot serializes s into a URL-safe token.
func EncodeSnapshot(s Snapshot) (string, error) {
	if s.Payments == nil {
		s.Payments = map[string]models.Payment{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeSnapshot parses a token produced by EncodeSnapshot. Any decoding
// failure or structural inconsistency yields an error wrapping ErrMalformedSnapshot.
func DecodeSnapshot(token string) (Snapshot, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := checkSnapshot(&s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return s, nil
}

func checkSnapshot(s *Snapshot) error {
	j := &s.Junta
	if j.DateRange.DayCount() == 0 {
		return ErrInvalidRange
	}
	if len(j.Participants) != j.DateRange.DayCount() {
		return ErrRosterMismatch
	}
	taken := make(map[string]string, len(j.Participants))
	for _, p := range j.Participants {
		if p.AssignedDate == nil {
			continue
		}
		if !j.DateRange.Contains(*p.AssignedDate) {
			return fmt.Errorf("participant %q assigned outside the range", p.Name)
		}
		day := p.AssignedDate.String()
		if other, ok := taken[day]; ok {
			return fmt.Errorf("participants %q and %q share %s", other, p.Name, day)
		}
		taken[day] = p.Name
	}
	if s.Payments == nil {
		s.Payments = map[string]models.Payment{}
	}
	for key, p := range s.Payments {
		day, err := models.ParseDate(key)
		if err != nil {
			return err
		}
		if !p.Day.IsZero() && !p.Day.Equal(day) {
			return fmt.Errorf("payment keyed %s is for %s", key, p.Day)
		}
		if !j.DateRange.Contains(day) {
			return fmt.Errorf("payment for %s: %w", key, ErrDayOutOfRange)
		}
		in := PaymentInput{Amount: p.Amount, Method: p.Method, Recipient: p.Recipient}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("payment for %s: %w", key, err)
		}
		if p.Day.IsZero() {
			p.Day = day
			s.Payments[key] = p
		}
	}
	return nil
}
