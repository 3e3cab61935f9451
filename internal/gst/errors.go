package gst

import (
	"errors"
	"fmt"
)

// ErrInvalidLineItem is returned when a line item cannot be taxed.
var ErrInvalidLineItem = errors.New("invalid line item")

// LineItemError describes which line item and field failed validation.
type LineItemError struct {
	Index  int
	Field  string
	Reason string
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("%s: items[%d].%s %s", ErrInvalidLineItem, e.Index, e.Field, e.Reason)
}

func (e *LineItemError) Unwrap() error { return ErrInvalidLineItem }
