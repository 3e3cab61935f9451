package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gstbook/internal/domain"
	"gstbook/internal/gst"
)

// CalculateRequest is the body of POST /api/v1/gst/calculate.
type CalculateRequest struct {
	Items          []gst.LineItem `json:"items"`
	SupplierState  string         `json:"supplier_state" binding:"required"`
	RecipientState string         `json:"recipient_state" binding:"required"`
	ReverseCharge  bool           `json:"reverse_charge"`
}

// CalculateResponse is a tax calculation with the total spelled out.
type CalculateResponse struct {
	*gst.Calculation
	AmountInWords string `json:"amount_in_words"`
}

// GSTINResponse describes a GSTIN lookup.
type GSTINResponse struct {
	GSTIN     string `json:"gstin"`
	Valid     bool   `json:"valid"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	PAN       string `json:"pan,omitempty"`
}

// GSTHandler exposes the tax engine without touching storage.
type GSTHandler struct{}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler() *GSTHandler {
	return &GSTHandler{}
}

// Calculate handles POST /api/v1/gst/calculate
func (h *GSTHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	calc, err := gst.Calculate(req.Items, req.SupplierState, req.RecipientState, req.ReverseCharge)
	if err != nil {
		var lineErr *gst.LineItemError
		if errors.As(err, &lineErr) {
			RespondError(c, http.StatusBadRequest, "INVALID_LINE_ITEM", lineErr.Error())
			return
		}
		HandleError(c, err)
		return
	}
	if !gst.WithinLimit(calc.TotalAmount) {
		HandleError(c, domain.ErrAmountOutOfRange)
		return
	}

	RespondOK(c, CalculateResponse{Calculation: calc, AmountInWords: gst.AmountInWords(calc.TotalAmount)})
}

// GSTIN handles GET /api/v1/gst/gstin/:gstin
func (h *GSTHandler) GSTIN(c *gin.Context) {
	value := strings.ToUpper(strings.TrimSpace(c.Param("gstin")))
	resp := GSTINResponse{GSTIN: value, Valid: gst.ValidateGSTIN(value)}
	if resp.Valid {
		resp.State, _ = gst.StateFromGSTIN(value)
		resp.StateCode = value[:2]
		resp.PAN, _ = gst.PANFromGSTIN(value)
	}
	RespondOK(c, resp)
}

// Words handles GET /api/v1/gst/words?amount=
func (h *GSTHandler) Words(c *gin.Context) {
	raw := c.Query("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a decimal number")
		return
	}
	if !gst.WithinLimit(amount) {
		HandleError(c, domain.ErrAmountOutOfRange)
		return
	}
	RespondOK(c, gin.H{"amount": amount.StringFixed(gst.MoneyPlaces), "words": gst.AmountInWords(amount)})
}

// States handles GET /api/v1/gst/states
func (h *GSTHandler) States(c *gin.Context) {
	RespondOK(c, gst.States())
}
