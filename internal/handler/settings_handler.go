package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbook/internal/service"
)

// SettingsHandler handles the shop's company profile and numbering settings.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), shop)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, settings)
}

// Upsert handles PUT /api/v1/settings
func (h *SettingsHandler) Upsert(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	var input service.UpsertSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	settings, err := h.settingsService.Upsert(c.Request.Context(), shop, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, settings)
}

// NextNumber handles GET /api/v1/settings/next-invoice-number
func (h *SettingsHandler) NextNumber(c *gin.Context) {
	shop, ok := extractShop(c)
	if !ok {
		return
	}

	number, err := h.settingsService.NextInvoiceNumber(c.Request.Context(), shop)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoice_number": number})
}
