// Package events publishes junta domain events to other processes.
package events

import (
	"context"
	"log/slog"
	"time"
)

// Routing keys.
const (
	PaymentRecorded = "junta.payment.recorded"
	PaymentPending  = "junta.payment.pending"
	DatesAssigned   = "junta.dates.assigned"
)

// Event is the JSON body of a published message. Type doubles as the routing key.
type Event struct {
	Type        string    `json:"type"`
	JuntaID     string    `json:"juntaId"`
	JuntaName   string    `json:"juntaName,omitempty"`
	Day         string    `json:"day,omitempty"`
	Participant string    `json:"participant,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Method      string    `json:"method,omitempty"`
	Member      string    `json:"member,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Publisher is implemented by types that can publish events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// LogPublisher writes events to a logger. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher returns a publisher that logs through logger, or the
// default logger when logger is nil.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, ev Event) error {
	p.logger.InfoContext(ctx, "event",
		"type", ev.Type,
		"junta_id", ev.JuntaID,
		"day", ev.Day,
		"participant", ev.Participant,
		"member", ev.Member,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
