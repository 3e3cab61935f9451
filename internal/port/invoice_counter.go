package port

import "context"

// InvoiceCounter allocates sequential invoice counters, one sequence per shop.
//
// Next must be atomic: concurrent callers for the same shop never receive the
// same value, and values are handed out without gaps.
type InvoiceCounter interface {
	// Current returns the counter the next invoice will receive.
	Current(ctx context.Context, shop string) (int, error)
	// Next allocates the current counter and advances the sequence.
	Next(ctx context.Context, shop string) (int, error)
	// Reset makes next the counter the following invoice will receive.
	Reset(ctx context.Context, shop string, next int) error
}
