package domain

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("invalid export range")

// SubmissionAttemptFilter selects attempts created in [From, To)
type SubmissionAttemptFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

// SubmissionAttemptReader lists the audit trail for operators
type SubmissionAttemptReader interface {
	List(ctx context.Context, filter SubmissionAttemptFilter) ([]SubmissionAttempt, error)
}

// AttemptExportUsecase renders the audit trail as a spreadsheet
type AttemptExportUsecase interface {
	// ExportAttempts returns the xlsx bytes and a download filename
	ExportAttempts(ctx context.Context, filter SubmissionAttemptFilter) ([]byte, string, error)
}
