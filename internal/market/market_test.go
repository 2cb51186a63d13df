package market

import (
	"context"
	"testing"
	"time"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	markets []*Market
	nextID  int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) FindByTermAndLocation(
	ctx context.Context,
	userID, term, location string,
) (*Market, error) {
	for _, mk := range m.markets {
		if mk.UserID == userID && mk.Term == term && mk.Location == location {
			return mk, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRepository) Insert(ctx context.Context, mk *Market) error {
	mk.ID = m.nextID
	m.nextID++
	mk.CreatedAt = time.Now()
	m.markets = append(m.markets, mk)
	return nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, userID string) ([]*Market, error) {
	var out []*Market
	for _, mk := range m.markets {
		if mk.UserID == userID {
			out = append(out, mk)
		}
	}
	return out, nil
}

func (m *MockRepository) FindByID(ctx context.Context, marketID int64) (*Market, error) {
	for _, mk := range m.markets {
		if mk.ID == marketID {
			return mk, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRepository) IsOwner(ctx context.Context, marketID int64, userID string) (bool, error) {
	for _, mk := range m.markets {
		if mk.ID == marketID {
			return mk.UserID == userID, nil
		}
	}
	return false, nil
}

func (m *MockRepository) Delete(ctx context.Context, marketID int64) error {
	for i, mk := range m.markets {
		if mk.ID == marketID {
			m.markets = append(m.markets[:i], m.markets[i+1:]...)
			return nil
		}
	}
	return nil
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestEnsureMarket_DedupReturnsSameID(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	first, err := service.EnsureMarket(ctx, "user-1", "Barbershop", "Example District", "Personal care")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := service.EnsureMarket(ctx, "user-1", "Barbershop", "Example District", "Personal care")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same market id, got %d and %d", first.ID, second.ID)
	}

	if len(repo.markets) != 1 {
		t.Errorf("expected 1 market row, got %d", len(repo.markets))
	}
}

func TestEnsureMarket_DistinctPerOwnerAndLocation(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	a, _ := service.EnsureMarket(ctx, "user-1", "Barbershop", "District A", "Personal care")
	b, _ := service.EnsureMarket(ctx, "user-1", "Barbershop", "District B", "Personal care")
	c, _ := service.EnsureMarket(ctx, "user-2", "Barbershop", "District A", "Personal care")

	if a.ID == b.ID || a.ID == c.ID {
		t.Error("expected distinct markets for distinct (owner, term, location)")
	}
}

func TestEnsureMarket_MissingFields(t *testing.T) {
	service := NewService(NewMockRepository())

	if _, err := service.EnsureMarket(context.Background(), "user-1", "", "somewhere", ""); err == nil {
		t.Fatal("expected error for missing term")
	}
}

func TestEnsureMarket_DefaultBusinessType(t *testing.T) {
	service := NewService(NewMockRepository())

	m, err := service.EnsureMarket(context.Background(), "user-1", "Bakery", "Old Town", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.BusinessType != defaultBusinessType {
		t.Errorf("expected default business type, got %q", m.BusinessType)
	}
}

func TestDelete_RequiresOwnership(t *testing.T) {
	repo := NewMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	m, _ := service.EnsureMarket(ctx, "user-1", "Gym", "Downtown", "Fitness")

	if err := service.Delete(ctx, m.ID, "user-2"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if err := service.Delete(ctx, m.ID, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.markets) != 0 {
		t.Error("expected market deleted")
	}
}
