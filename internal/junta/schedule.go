package junta

import "github.com/mmynk/familyfinance/internal/models"

// DayStatus is one row of the contribution calendar.
type DayStatus struct {
	Day         models.Date
	Responsible string
	Payment     *models.Payment
}

// Paid reports whether a paid record exists for the day.
func (d DayStatus) Paid() bool {
	return d.Payment != nil && d.Payment.Paid
}

// StatusOf returns the status of a single day of j.
func StatusOf(j *models.Junta, payments map[string]models.Payment, day models.Date) DayStatus {
	status := DayStatus{Day: day}
	if p, ok := Responsible(j.Participants, day); ok {
		status.Responsible = p.Name
	}
	if p, ok := payments[day.String()]; ok {
		status.Payment = &p
	}
	return status
}

// Schedule lists every day of j in calendar order with who is responsible and
// whether it has been paid.
func Schedule(j *models.Junta, payments map[string]models.Payment) []DayStatus {
	days := Days(j.DateRange)
	out := make([]DayStatus, len(days))
	for i, day := range days {
		out[i] = StatusOf(j, payments, day)
	}
	return out
}
