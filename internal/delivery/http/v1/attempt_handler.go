package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"contact-page-backend/internal/domain"
	"contact-page-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportDateLayout = "2006-01-02"
)

type AttemptHandler struct {
	exportUC domain.AttemptExportUsecase
}

// NewAttemptHandler registers the operator export under an already
// authenticated group
func NewAttemptHandler(admin *gin.RouterGroup, exportUC domain.AttemptExportUsecase) {
	handler := &AttemptHandler{exportUC: exportUC}

	admin.GET("/submission-attempts/export", handler.ExportAttempts)
}

// ExportAttempts godoc
// @Summary      Export submission attempts to Excel
// @Description  Downloads the send audit trail, newest first. Dates are UTC days and both ends are inclusive. Defaults to the last 30 days.
// @Tags         admin
// @Produce      application/octet-stream
// @Security     AdminKey
// @Param        from   query     string  false  "First day (YYYY-MM-DD)"
// @Param        to     query     string  false  "Last day (YYYY-MM-DD)"
// @Param        limit  query     int     false  "Max rows (default: 1000, max: 10000)"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin/submission-attempts/export [get]
func (h *AttemptHandler) ExportAttempts(c *gin.Context) {
	filter := domain.SubmissionAttemptFilter{}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(exportDateLayout, from)
		if err != nil {
			c.Error(apperror.BadRequest("from must be YYYY-MM-DD"))
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(exportDateLayout, to)
		if err != nil {
			c.Error(apperror.BadRequest("to must be YYYY-MM-DD"))
			return
		}
		filter.To = t.AddDate(0, 0, 1)
	}
	if limit := c.Query("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 1 {
			c.Error(apperror.BadRequest("limit must be a positive integer"))
			return
		}
		filter.Limit = v
	}

	data, filename, err := h.exportUC.ExportAttempts(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			c.Error(apperror.BadRequest("from must not be after to"))
			return
		}
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, data)
}
