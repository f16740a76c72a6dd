package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
)

const paymentColumns = `day, paid, amount, method, recipient, recorded_by, recorded_at, revision`

// SavePayment writes the payment for p.Day. Every path is a single statement,
// so a write to one (junta, day) key is atomic.
func (s *SQLiteStore) SavePayment(ctx context.Context, juntaID string, p *models.Payment, expectedRevision *int64) error {
	args := []interface{}{p.Paid, p.Amount, string(p.Method), nullString(p.Recipient), p.RecordedBy, p.RecordedAt}

	switch {
	case expectedRevision == nil:
		// Last write wins.
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO junta_payments (junta_id, `+paymentColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
			 ON CONFLICT (junta_id, day) DO UPDATE SET
			     paid = excluded.paid,
			     amount = excluded.amount,
			     method = excluded.method,
			     recipient = excluded.recipient,
			     recorded_by = excluded.recorded_by,
			     recorded_at = excluded.recorded_at,
			     revision = junta_payments.revision + 1
			 RETURNING revision`,
			append([]interface{}{juntaID, p.Day}, args...)...,
		).Scan(&p.Revision)
		if err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

	case *expectedRevision == 0:
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO junta_payments (junta_id, `+paymentColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
			 ON CONFLICT (junta_id, day) DO NOTHING`,
			append([]interface{}{juntaID, p.Day}, args...)...,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("payment %s already recorded: %w", p.Day, storage.ErrConflict)
		}
		p.Revision = 1

	default:
		res, err := s.db.ExecContext(ctx,
			`UPDATE junta_payments
			 SET paid = ?, amount = ?, method = ?, recipient = ?, recorded_by = ?, recorded_at = ?,
			     revision = revision + 1
			 WHERE junta_id = ? AND day = ? AND revision = ?`,
			append(args, juntaID, p.Day, *expectedRevision)...,
		)
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("payment %s not at revision %d: %w", p.Day, *expectedRevision, storage.ErrConflict)
		}
		p.Revision = *expectedRevision + 1
	}

	return nil
}

func scanPayment(row scanner) (models.Payment, error) {
	var p models.Payment
	var recipient sql.NullString
	err := row.Scan(&p.Day, &p.Paid, &p.Amount, &p.Method, &recipient, &p.RecordedBy, &p.RecordedAt, &p.Revision)
	if err != nil {
		return p, err
	}
	if recipient.Valid {
		p.Recipient = recipient.String
	}
	return p, nil
}

// GetPayment retrieves the payment recorded for day.
func (s *SQLiteStore) GetPayment(ctx context.Context, juntaID string, day models.Date) (*models.Payment, error) {
	p, err := scanPayment(s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM junta_payments WHERE junta_id = ? AND day = ?`,
		juntaID, day,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s for junta %s: %w", day, juntaID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// ListPayments retrieves all payments of a junta in day order.
func (s *SQLiteStore) ListPayments(ctx context.Context, juntaID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM junta_payments WHERE junta_id = ? ORDER BY day`,
		juntaID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
