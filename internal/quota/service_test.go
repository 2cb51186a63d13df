package quota

import (
	"context"
	"testing"
	"time"

	"github.com/Clssp/New-Radas-Local/internal/settings"
)

// --------------------------------------------------
// Mock Repository (mirrors the conditional-update semantics)
// --------------------------------------------------

type mockRepo struct {
	count    int
	lastDate *time.Time
}

func (m *mockRepo) AdmitOne(ctx context.Context, userID string, today time.Time, limit int) (bool, error) {
	if m.lastDate == nil || !sameDay(*m.lastDate, today) {
		m.count = 1
		d := today
		m.lastDate = &d
		return true, nil
	}
	if m.count < limit {
		m.count++
		return true, nil
	}
	return false, nil
}

func (m *mockRepo) Usage(ctx context.Context, userID string) (int, *time.Time, error) {
	return m.count, m.lastDate, nil
}

type settingsRepo struct{ limit string }

func (s *settingsRepo) Get(ctx context.Context, name string) (string, error) {
	return s.limit, nil
}
func (s *settingsRepo) Update(ctx context.Context, name, value string) error {
	s.limit = value
	return nil
}

func newTestService(limit string) (*Service, *mockRepo) {
	repo := &mockRepo{}
	svc := NewService(repo, settings.NewService(&settingsRepo{limit: limit}, nil))
	return svc, repo
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestTryAdmit_Monotonicity(t *testing.T) {
	svc, _ := newTestService("3")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := svc.TryAdmit(ctx, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("call %d should be admitted", i+1)
		}
	}

	ok, err := svc.TryAdmit(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("call past the limit must be denied")
	}
}

func TestTryAdmit_DateRolloverResets(t *testing.T) {
	svc, repo := newTestService("1")
	ctx := context.Background()

	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day1 }

	if ok, _ := svc.TryAdmit(ctx, "user-1"); !ok {
		t.Fatal("first run of the day must be admitted")
	}
	if ok, _ := svc.TryAdmit(ctx, "user-1"); ok {
		t.Fatal("second run with limit=1 must be denied")
	}

	// Next day: lazy reset on first use.
	svc.now = func() time.Time { return day1.Add(24 * time.Hour) }
	if ok, _ := svc.TryAdmit(ctx, "user-1"); !ok {
		t.Fatal("first run of the next day must be admitted")
	}
	if repo.count != 1 {
		t.Fatalf("expected count reset to 1, got %d", repo.count)
	}
}

func TestTryAdmit_ZeroLimitDeniesEverything(t *testing.T) {
	svc, _ := newTestService("0")

	if ok, _ := svc.TryAdmit(context.Background(), "user-1"); ok {
		t.Fatal("limit 0 must deny all runs")
	}
}

func TestPeek_NeverMutates(t *testing.T) {
	svc, repo := newTestService("2")
	ctx := context.Background()

	if _, err := svc.TryAdmit(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := repo.count
	usage, err := svc.Peek(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.count != before {
		t.Fatal("Peek must not mutate the counter")
	}
	if usage.Count != 1 || usage.Limit != 2 || usage.LimitReached {
		t.Fatalf("unexpected usage: %+v", usage)
	}
}

func TestPeek_InterpretsRollover(t *testing.T) {
	svc, _ := newTestService("2")
	ctx := context.Background()

	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day1 }
	svc.TryAdmit(ctx, "user-1")
	svc.TryAdmit(ctx, "user-1")

	svc.now = func() time.Time { return day1.Add(24 * time.Hour) }
	usage, err := svc.Peek(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.Count != 0 || usage.LimitReached {
		t.Fatalf("expected fresh-day view, got %+v", usage)
	}
}
