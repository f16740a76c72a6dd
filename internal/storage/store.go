// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/familyfinance/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a guarded write finds the record changed,
	// e.g. a payment revision mismatch or a second date assignment.
	ErrConflict = errors.New("conflicting update")

	// ErrIncompletePatch is returned by a non-merge update that leaves fields unset.
	ErrIncompletePatch = errors.New("replacement is missing fields")
)

// Store defines the interface for household data storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTransaction persists a new transaction.
	// The ID, CreatedAt and UpdatedAt fields are populated by the store.
	CreateTransaction(ctx context.Context, t *models.Transaction) error

	// GetTransaction retrieves a transaction by ID.
	// Returns ErrNotFound if it does not exist.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// UpdateTransaction applies patch to a transaction and returns the result.
	// With merge=false every field of patch must be set (a full replacement).
	UpdateTransaction(ctx context.Context, id string, patch TransactionPatch, merge bool) (*models.Transaction, error)

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, id string) error

	// ListTransactions returns transactions matching filter in the given order.
	ListTransactions(ctx context.Context, filter TransactionFilter, order TransactionOrder) ([]*models.Transaction, error)

	// SubscribeTransactions calls fn after every committed change matching filter.
	// Calling the returned function stops delivery; it is safe to call twice.
	SubscribeTransactions(filter TransactionFilter, fn func(TransactionEvent)) (unsubscribe func())

	// CreateJunta persists a new, unassigned junta with its roster.
	// The ID and CreatedAt fields are populated by the store.
	CreateJunta(ctx context.Context, j *models.Junta) error

	// GetJunta retrieves a junta with its roster in submission order.
	GetJunta(ctx context.Context, id string) (*models.Junta, error)

	// ListJuntas returns all juntas, newest first.
	ListJuntas(ctx context.Context) ([]*models.Junta, error)

	// SaveAssignment stores the assigned dates, strategy and AssignedAt of j.
	// Returns ErrConflict if the junta was already assigned.
	SaveAssignment(ctx context.Context, j *models.Junta) error

	// DeleteJunta removes a junta together with its roster and payments.
	DeleteJunta(ctx context.Context, id string) error

	// SavePayment writes the payment for p.Day atomically.
	// With expectedRevision nil the write always wins. Otherwise it succeeds only
	// if the stored revision equals *expectedRevision (0 meaning no payment yet)
	// and fails with ErrConflict. p.Revision is set to the stored revision.
	SavePayment(ctx context.Context, juntaID string, p *models.Payment, expectedRevision *int64) error

	// GetPayment retrieves the payment for one day. Returns ErrNotFound if the
	// day has never been recorded.
	GetPayment(ctx context.Context, juntaID string, day models.Date) (*models.Payment, error)

	// ListPayments returns every recorded payment of a junta in day order.
	ListPayments(ctx context.Context, juntaID string) ([]models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
