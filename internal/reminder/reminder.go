// Package reminder nags the responsible participant of every active junta
// when today's contribution has not been recorded yet.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/familyfinance/internal/events"
	"github.com/mmynk/familyfinance/internal/junta"
	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
)

// Repository is the slice of storage.Store the job reads from.
type Repository interface {
	ListJuntas(ctx context.Context) ([]*models.Junta, error)
	GetPayment(ctx context.Context, juntaID string, day models.Date) (*models.Payment, error)
}

// Job finds unpaid junta days and publishes a pending-payment event for each.
type Job struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewJob creates a reminder job. A nil logger uses slog.Default.
func NewJob(repo Repository, publisher events.Publisher, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run checks today's day of every assigned junta and returns how many
// reminders were sent.
func (j *Job) Run(ctx context.Context) (int, error) {
	today := models.DateOf(j.now())

	juntas, err := j.repo.ListJuntas(ctx)
	if err != nil {
		return 0, fmt.Errorf("list juntas: %w", err)
	}

	sent := 0
	for _, jt := range juntas {
		if !jt.Assigned() || !jt.DateRange.Contains(today) {
			continue
		}

		_, err := j.repo.GetPayment(ctx, jt.ID, today)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			j.logger.Error("failed to check junta payment", "junta_id", jt.ID, "day", today.String(), "error", err)
			continue
		}

		p, ok := junta.Responsible(jt.Participants, today)
		if !ok {
			continue
		}

		j.logger.Warn("junta payment pending",
			"junta_id", jt.ID,
			"junta", jt.Name,
			"day", today.String(),
			"participant", p.Name,
		)
		ev := events.Event{
			Type:        events.PaymentPending,
			JuntaID:     jt.ID,
			JuntaName:   jt.Name,
			Day:         today.String(),
			Participant: p.Name,
			Amount:      jt.DailyContribution.String(),
			OccurredAt:  j.now().UTC(),
		}
		if err := j.publisher.Publish(ctx, ev); err != nil {
			j.logger.Error("failed to publish reminder", "junta_id", jt.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
