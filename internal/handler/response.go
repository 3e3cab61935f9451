package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gstbook/internal/domain"
	"gstbook/internal/logging"
	"gstbook/internal/middleware"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger sets the logger used for internal errors.
func SetLogger(l logrus.FieldLogger) {
	logger = l
}

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrSettingsNotFound):
		return http.StatusNotFound, "SETTINGS_NOT_FOUND", "shop settings not found; complete onboarding first"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already exists; check the starting number in settings"
	case errors.Is(err, domain.ErrMalformedGSTIN):
		return http.StatusBadRequest, "MALFORMED_GSTIN", "GSTIN must be 15 characters: state code, PAN, entity number, Z, check character"
	case errors.Is(err, domain.ErrInvalidLineItem):
		// The line item error names the offending item and field.
		return http.StatusBadRequest, "INVALID_LINE_ITEM", err.Error()
	case errors.Is(err, domain.ErrNoLineItems):
		return http.StatusBadRequest, "NO_LINE_ITEMS", "invoice must have at least one line item"
	case errors.Is(err, domain.ErrInvalidStartingNumber):
		return http.StatusBadRequest, "INVALID_STARTING_NUMBER", "starting invoice number must be at least 1"
	case errors.Is(err, domain.ErrInvalidGSTRate):
		return http.StatusBadRequest, "INVALID_GST_RATE", "GST rate must be between 0 and 100"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid status; allowed: DRAFT, SENT, PAID, CANCELLED"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION", "invoice status transition not allowed"
	case errors.Is(err, domain.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return http.StatusBadRequest, "AMOUNT_OUT_OF_RANGE", "amount must not exceed 999999999999.99"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest, "INVALID_DATE_RANGE", "from must be before to"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractShop reads the authenticated shop from the request context.
// Returns false if it is missing (error response already written).
func extractShop(c *gin.Context) (string, bool) {
	shop, err := middleware.GetShop(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing shop context")
		return "", false
	}
	return shop, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		logging.Error(logger, "handler", c.Request.Method+" "+c.FullPath(), logrus.Fields{
			"request_id": requestID,
			"path":       c.Request.URL.Path,
		}, err)
	}
	RespondError(c, status, code, msg)
}
