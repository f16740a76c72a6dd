package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
)

const transactionColumns = `id, type, amount, category, date, person, description, created_by, created_at, updated_at`

func scanTransaction(row scanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := row.Scan(&t.ID, &t.Type, &t.Amount, &t.Category, &t.Date, &t.Person,
		&t.Description, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTransaction persists a new transaction to the database.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	// Generate ID if not set
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if t.CreatedAt == 0 {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), t.Amount, t.Category, t.Date, t.Person, t.Description,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	s.watcher.Publish(storage.TransactionEvent{Kind: storage.EventCreated, Transaction: *t})
	return nil
}

// GetTransaction retrieves a transaction by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction applies patch inside a database transaction.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, id string, patch storage.TransactionPatch, merge bool) (*models.Transaction, error) {
	if !merge && !patch.Complete() {
		return nil, storage.ErrIncompletePatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t, err := scanTransaction(tx.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	previous := *t
	patch.Apply(t)
	t.UpdatedAt = time.Now().Unix()

	_, err = tx.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, amount = ?, category = ?, date = ?, person = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		string(t.Type), t.Amount, t.Category, t.Date, t.Person, t.Description, t.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.watcher.Publish(storage.TransactionEvent{Kind: storage.EventUpdated, Transaction: *t, Previous: &previous})
	return t, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	t, err := s.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}

	s.watcher.Publish(storage.TransactionEvent{Kind: storage.EventDeleted, Transaction: *t})
	return nil
}

// ListTransactions retrieves transactions matching filter.
func (s *SQLiteStore) ListTransactions(ctx context.Context, filter storage.TransactionFilter, order storage.TransactionOrder) ([]*models.Transaction, error) {
	var where []string
	var args []interface{}
	if filter.Person != "" {
		where = append(where, "person = ? COLLATE NOCASE")
		args = append(args, filter.Person)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		where = append(where, "category = ? COLLATE NOCASE")
		args = append(args, filter.Category)
	}
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.To)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderClause(order)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

func orderClause(order storage.TransactionOrder) string {
	switch order {
	case storage.OrderDateAsc:
		return "date ASC, created_at ASC"
	case storage.OrderAmountDesc:
		return "CAST(amount AS REAL) DESC, date DESC"
	case storage.OrderCreatedDesc:
		return "created_at DESC, id"
	default:
		return "date DESC, created_at DESC"
	}
}

// SubscribeTransactions registers fn for committed changes matching filter.
func (s *SQLiteStore) SubscribeTransactions(filter storage.TransactionFilter, fn func(storage.TransactionEvent)) func() {
	return s.watcher.Subscribe(filter, fn)
}
