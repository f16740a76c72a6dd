package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/familyfinance/internal/models"
	"github.com/mmynk/familyfinance/internal/storage"
)

const juntaColumns = `id, name, date_from, date_to, daily_contribution, currency, strategy, created_by, created_at, assigned_at`

// CreateJunta persists a new junta and its roster.
func (s *SQLiteStore) CreateJunta(ctx context.Context, j *models.Junta) error {
	// Generate ID if not set
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	if j.CreatedAt == 0 {
		j.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO juntas (`+juntaColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Name, j.DateRange.From, j.DateRange.To, j.DailyContribution, j.Currency,
		nullString(string(j.Strategy)), j.CreatedBy, j.CreatedAt, nullInt(j.AssignedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert junta: %w", err)
	}

	// Insert participants
	for i, p := range j.Participants {
		var assigned interface{}
		if p.AssignedDate != nil {
			assigned = *p.AssignedDate
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO junta_participants (junta_id, position, name, assigned_date) VALUES (?, ?, ?, ?)",
			j.ID, i, p.Name, assigned,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanJunta(row scanner) (*models.Junta, error) {
	j := &models.Junta{}
	var strategy sql.NullString
	var assignedAt sql.NullInt64
	err := row.Scan(&j.ID, &j.Name, &j.DateRange.From, &j.DateRange.To, &j.DailyContribution,
		&j.Currency, &strategy, &j.CreatedBy, &j.CreatedAt, &assignedAt)
	if err != nil {
		return nil, err
	}
	if strategy.Valid {
		j.Strategy = models.Strategy(strategy.String)
	}
	if assignedAt.Valid {
		j.AssignedAt = assignedAt.Int64
	}
	return j, nil
}

// GetJunta retrieves a junta by ID, including its roster.
func (s *SQLiteStore) GetJunta(ctx context.Context, id string) (*models.Junta, error) {
	j, err := scanJunta(s.db.QueryRowContext(ctx,
		`SELECT `+juntaColumns+` FROM juntas WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("junta %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get junta: %w", err)
	}

	if j.Participants, err = s.loadParticipants(ctx, id); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, juntaID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, assigned_date FROM junta_participants WHERE junta_id = ? ORDER BY position",
		juntaID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		var day models.Date
		if err := rows.Scan(&p.Name, &day); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if !day.IsZero() {
			p.AssignedDate = &day
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// ListJuntas retrieves every junta, newest first.
func (s *SQLiteStore) ListJuntas(ctx context.Context) ([]*models.Junta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+juntaColumns+` FROM juntas ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list juntas: %w", err)
	}

	var juntas []*models.Junta
	for rows.Next() {
		j, err := scanJunta(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan junta: %w", err)
		}
		juntas = append(juntas, j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate juntas: %w", err)
	}

	// Rosters are loaded after the cursor is closed; the pool has a single connection.
	for _, j := range juntas {
		if j.Participants, err = s.loadParticipants(ctx, j.ID); err != nil {
			return nil, err
		}
	}
	return juntas, nil
}

// SaveAssignment stores the assigned roster of j.
func (s *SQLiteStore) SaveAssignment(ctx context.Context, j *models.Junta) error {
	if j.AssignedAt == 0 {
		j.AssignedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE juntas SET strategy = ?, assigned_at = ? WHERE id = ? AND assigned_at IS NULL",
		string(j.Strategy), j.AssignedAt, j.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update junta: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM juntas WHERE id = ?", j.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("junta %s: %w", j.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check junta existence: %w", err)
		}
		return fmt.Errorf("junta %s already assigned: %w", j.ID, storage.ErrConflict)
	}

	for i, p := range j.Participants {
		if p.AssignedDate == nil {
			continue
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE junta_participants SET assigned_date = ? WHERE junta_id = ? AND position = ?",
			*p.AssignedDate, j.ID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to assign participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteJunta removes a junta by ID together with its roster and payments.
func (s *SQLiteStore) DeleteJunta(ctx context.Context, id string) error {
	// Check if junta exists
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM juntas WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("junta %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check junta existence: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM junta_payments WHERE junta_id = ?",
		"DELETE FROM junta_participants WHERE junta_id = ?",
		"DELETE FROM juntas WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete junta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
