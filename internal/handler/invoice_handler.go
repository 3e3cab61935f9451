package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gstbook/internal/domain"
	"gstbook/internal/service"
)

// UpdateStatusRequest is the body of PATCH /api/v1/invoices/:number/status.
type UpdateStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required"`
}

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), shop, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// Preview handles POST /api/v1/invoices/preview
func (h *InvoiceHandler) Preview(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Preview(c.Request.Context(), shop, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// GetByNumber handles GET /api/v1/invoices/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByNumber(c.Request.Context(), shop, c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	filter := domain.InvoiceFilter{
		Status: domain.InvoiceStatus(c.Query("status")),
		From:   from,
		To:     to,
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), shop, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateStatus handles PATCH /api/v1/invoices/:number/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.UpdateStatus(c.Request.Context(), shop, c.Param("number"), req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// parseDateRange reads the optional from/to query parameters as YYYY-MM-DD
// dates in UTC. to is inclusive: the returned upper bound is the next midnight.
// Returns false if a value is malformed (error response already written).
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "from must be a date in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "to must be a date in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
		to = d.AddDate(0, 0, 1)
	}
	return from, to, true
}
