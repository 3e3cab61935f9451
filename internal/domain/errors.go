package domain

import (
	"errors"

	"gstbook/internal/gst"
)

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrSettingsNotFound        = errors.New("shop settings not found; complete onboarding first")
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrDuplicateInvoiceNumber  = errors.New("invoice number already exists for this shop")
	ErrMalformedGSTIN          = errors.New("GSTIN does not match the 15-character format")
	ErrNoLineItems             = errors.New("invoice must have at least one line item")
	ErrInvalidStartingNumber   = errors.New("starting invoice number must be at least 1")
	ErrInvalidGSTRate          = errors.New("GST rate must be between 0 and 100")
	ErrInvalidStatus           = errors.New("unknown invoice status")
	ErrInvalidStatusTransition = errors.New("invoice status transition not allowed")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrAmountOutOfRange        = errors.New("amount exceeds 999999999999.99")
)

// ErrInvalidLineItem is the tax engine's sentinel; *gst.LineItemError wraps it.
var ErrInvalidLineItem = gst.ErrInvalidLineItem
