package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gstbook/internal/domain"
	"gstbook/internal/report"
	"gstbook/internal/service"
)

// ReportHandler handles GST report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles GET /api/v1/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), shop, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// Register handles GET /api/v1/reports/register?format=csv|xlsx
func (h *ReportHandler) Register(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	// Buffer so a failure halfway through still produces a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.ExportRegister(c.Request.Context(), shop, from, to, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := report.BuildFilename(shop, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, report.ContentType(format), buf.Bytes())
}
