package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"contact-page-backend/internal/domain"
	"contact-page-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type MockAttemptReader struct {
	mock.Mock
}

func (m *MockAttemptReader) List(ctx context.Context, filter domain.SubmissionAttemptFilter) ([]domain.SubmissionAttempt, error) {
	args := m.Called(ctx, filter)
	attempts, _ := args.Get(0).([]domain.SubmissionAttempt)
	return attempts, args.Error(1)
}

func TestExportAttempts(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	t.Run("Should write one row per attempt", func(t *testing.T) {
		repo := new(MockAttemptReader)
		uc := usecase.NewAttemptExportUsecase(repo)
		repo.On("List", ctx, domain.SubmissionAttemptFilter{From: from, To: to, Limit: 1000}).Return([]domain.SubmissionAttempt{
			{ID: 2, SessionID: "s2", MaskedEmail: "b***@example.com", Succeeded: true, CreatedAt: from.Add(2 * time.Hour)},
			{ID: 1, SessionID: "s1", MaskedEmail: "a***@example.com", ErrorText: "mail dispatch returned status 500", CreatedAt: from.Add(time.Hour)},
		}, nil)

		data, filename, err := uc.ExportAttempts(ctx, domain.SubmissionAttemptFilter{From: from, To: to})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(filename, "contact_submission_attempts_"))
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Attempts")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"ID", "CREATED AT (UTC)", "SESSION", "EMAIL", "RESULT", "ERROR"}, rows[0])
		require.GreaterOrEqual(t, len(rows[1]), 5)
		assert.Equal(t, []string{"2", "2024-05-01T02:00:00Z", "s2", "b***@example.com", "SENT"}, rows[1][:5])
		assert.Equal(t, []string{"1", "2024-05-01T01:00:00Z", "s1", "a***@example.com", "FAILED", "mail dispatch returned status 500"}, rows[2])
		repo.AssertExpectations(t)
	})

	t.Run("Should default the window and clamp the limit", func(t *testing.T) {
		repo := new(MockAttemptReader)
		uc := usecase.NewAttemptExportUsecase(repo)

		var got domain.SubmissionAttemptFilter
		repo.On("List", ctx, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(domain.SubmissionAttemptFilter)
		}).Return(nil, nil)

		_, _, err := uc.ExportAttempts(ctx, domain.SubmissionAttemptFilter{Limit: 1_000_000})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, got.To.Sub(got.From))
		assert.Equal(t, 10000, got.Limit)
	})

	t.Run("Should reject an inverted range", func(t *testing.T) {
		repo := new(MockAttemptReader)
		uc := usecase.NewAttemptExportUsecase(repo)

		_, _, err := uc.ExportAttempts(ctx, domain.SubmissionAttemptFilter{From: to, To: from})
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("Should propagate repository errors", func(t *testing.T) {
		repo := new(MockAttemptReader)
		uc := usecase.NewAttemptExportUsecase(repo)
		repo.On("List", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

		_, _, err := uc.ExportAttempts(ctx, domain.SubmissionAttemptFilter{From: from, To: to})
		assert.Error(t, err)
	})
}
