package postgres

import (
	"contact-page-backend/internal/domain"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const createSubmissionAttemptsTable = `
	CREATE TABLE IF NOT EXISTS contact_submission_attempts (
		id           BIGSERIAL PRIMARY KEY,
		session_id   TEXT        NOT NULL,
		masked_email TEXT        NOT NULL,
		succeeded    BOOLEAN     NOT NULL,
		error_text   TEXT        NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL
	)`

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SubmissionAttemptRepository writes the contact submission audit trail
type SubmissionAttemptRepository struct {
	db querier
}

// NewSubmissionAttemptRepository creates the attempt log repository
func NewSubmissionAttemptRepository(db querier) *SubmissionAttemptRepository {
	return &SubmissionAttemptRepository{db: db}
}

// EnsureSchema creates the attempts table when it does not exist yet
func (r *SubmissionAttemptRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSubmissionAttemptsTable); err != nil {
		return fmt.Errorf("create contact_submission_attempts: %w", err)
	}
	return nil
}

// Record inserts a resolved attempt
func (r *SubmissionAttemptRepository) Record(ctx context.Context, attempt *domain.SubmissionAttempt) error {
	query := `
		INSERT INTO contact_submission_attempts (session_id, masked_email, succeeded, error_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	return r.db.QueryRow(ctx, query,
		attempt.SessionID,
		attempt.MaskedEmail,
		attempt.Succeeded,
		attempt.ErrorText,
		attempt.CreatedAt,
	).Scan(&attempt.ID)
}

// List returns attempts in the filter's range, newest first
func (r *SubmissionAttemptRepository) List(ctx context.Context, filter domain.SubmissionAttemptFilter) ([]domain.SubmissionAttempt, error) {
	query := `
		SELECT id, session_id, masked_email, succeeded, error_text, created_at
		FROM contact_submission_attempts
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.From, filter.To, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list submission attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.SubmissionAttempt
	for rows.Next() {
		var a domain.SubmissionAttempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.MaskedEmail, &a.Succeeded, &a.ErrorText, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submission attempts: %w", err)
	}
	return attempts, nil
}
