package gst

import "fmt"

// InvoiceNumberWidth is the minimum number of digits in an invoice counter.
const InvoiceNumberWidth = 4

// FormatInvoiceNumber joins prefix and counter, zero-padding the counter to
// four digits. Counters above 9999 keep all their digits.
//
// The counter is owned by the caller; allocating it atomically is the job of
// the persistence layer.
func FormatInvoiceNumber(prefix string, counter int) string {
	return fmt.Sprintf("%s%0*d", prefix, InvoiceNumberWidth, counter)
}
