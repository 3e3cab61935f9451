package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockShopLocker is a mock implementation of port.ShopLocker. Released counts
// calls to the returned release func.
type MockShopLocker struct {
	mock.Mock
	Released int
}

func (m *MockShopLocker) Acquire(ctx context.Context, shop string) (func(), error) {
	args := m.Called(ctx, shop)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.Released++ }, nil
}
