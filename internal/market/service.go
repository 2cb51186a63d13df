package market

import (
	"context"
	"errors"
)

var ErrUnauthorized = errors.New("unauthorized")

const defaultBusinessType = "Generic / Other"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Ensure market (dedup: look up before insert)
// --------------------------------------------------
func (s *Service) EnsureMarket(
	ctx context.Context,
	userID, term, location, businessType string,
) (*Market, error) {

	if term == "" || location == "" {
		return nil, errors.New("missing required fields")
	}
	if businessType == "" {
		businessType = defaultBusinessType
	}

	existing, err := s.repo.FindByTermAndLocation(ctx, userID, term, location)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	m := &Market{
		UserID:       userID,
		Term:         term,
		Location:     location,
		BusinessType: businessType,
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMyMarkets(ctx context.Context, userID string) ([]*Market, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// GetOwned fetches a market and enforces ownership.
func (s *Service) GetOwned(
	ctx context.Context,
	marketID int64,
	userID string,
) (*Market, error) {

	isOwner, err := s.repo.IsOwner(ctx, marketID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, ErrUnauthorized
	}
	return s.repo.FindByID(ctx, marketID)
}

func (s *Service) Delete(
	ctx context.Context,
	marketID int64,
	userID string,
) error {

	isOwner, err := s.repo.IsOwner(ctx, marketID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, marketID)
}
