package market

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("market not found")

type Repository interface {
	// FindByTermAndLocation returns ErrNotFound when no market matches.
	FindByTermAndLocation(ctx context.Context, userID, term, location string) (*Market, error)
	Insert(ctx context.Context, m *Market) error
	ListByOwner(ctx context.Context, userID string) ([]*Market, error)
	FindByID(ctx context.Context, marketID int64) (*Market, error)
	IsOwner(ctx context.Context, marketID int64, userID string) (bool, error)
	Delete(ctx context.Context, marketID int64) error
}
