package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"contact-page-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	defaultExportWindow = 30 * 24 * time.Hour
	defaultExportLimit  = 1000
	maxExportLimit      = 10000
	attemptsSheet       = "Attempts"
)

type attemptExportUsecase struct {
	repo domain.SubmissionAttemptReader
	now  func() time.Time
}

// NewAttemptExportUsecase creates the audit trail export
func NewAttemptExportUsecase(repo domain.SubmissionAttemptReader) domain.AttemptExportUsecase {
	return &attemptExportUsecase{repo: repo, now: time.Now}
}

// ExportAttempts defaults to the last 30 days and 1000 rows
func (u *attemptExportUsecase) ExportAttempts(ctx context.Context, filter domain.SubmissionAttemptFilter) ([]byte, string, error) {
	if filter.To.IsZero() {
		filter.To = u.now()
	}
	if filter.From.IsZero() {
		filter.From = filter.To.Add(-defaultExportWindow)
	}
	if !filter.From.Before(filter.To) {
		return nil, "", fmt.Errorf("%w: from must be before to", domain.ErrInvalidRange)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultExportLimit
	}
	if filter.Limit > maxExportLimit {
		filter.Limit = maxExportLimit
	}

	attempts, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load submission attempts: %w", err)
	}

	data, err := u.exportExcel(attempts)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("contact_submission_attempts_%s.xlsx", u.now().Format("20060102_150405"))
	return data, filename, nil
}

func (u *attemptExportUsecase) exportExcel(attempts []domain.SubmissionAttempt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"ID", "CREATED AT (UTC)", "SESSION", "EMAIL", "RESULT", "ERROR"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(attemptsSheet, cell, h)
	}

	// Same header look as the other operator exports
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(attemptsSheet, "A1", endCell, headerStyle)

	for i, a := range attempts {
		result := "FAILED"
		if a.Succeeded {
			result = "SENT"
		}
		row := []interface{}{
			a.ID,
			a.CreatedAt.UTC().Format(time.RFC3339),
			a.SessionID,
			a.MaskedEmail,
			result,
			a.ErrorText,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(attemptsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write attempt row: %w", err)
		}
	}

	widths := []float64{10, 24, 40, 28, 10, 50}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(attemptsSheet, col, col, w)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
