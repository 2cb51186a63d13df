package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Clssp/New-Radas-Local/internal/settings"
)

type mockRepo struct {
	stats    Stats
	users    []UserRow
	active   map[string]bool
	statsErr error
}

func (m *mockRepo) Stats(context.Context) (*Stats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return &m.stats, nil
}

func (m *mockRepo) ListUsers(context.Context) ([]UserRow, error) {
	return m.users, nil
}

func (m *mockRepo) SetUserActive(_ context.Context, userID string, active bool) error {
	if m.active == nil {
		m.active = map[string]bool{}
	}
	m.active[userID] = active
	return nil
}

type mockSettingsRepo struct {
	values map[string]string
}

func (m *mockSettingsRepo) Get(_ context.Context, name string) (string, error) {
	v, ok := m.values[name]
	if !ok {
		return "", errors.New("no rows")
	}
	return v, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, name, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[name] = value
	return nil
}

func newTestRouter(repo *mockRepo, settingsRepo *mockSettingsRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(repo, settings.NewService(settingsRepo, nil))

	r := gin.New()
	r.GET("/admin/stats", h.Stats)
	r.GET("/admin/users", h.ListUsers)
	r.PATCH("/admin/users/:id", h.UpdateUser)
	r.PUT("/admin/settings/:name", h.UpdateSetting)
	return r
}

func TestStats(t *testing.T) {
	repo := &mockRepo{stats: Stats{Users: 3, Markets: 5, Snapshots: 11}}
	router := newTestRouter(repo, &mockSettingsRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"snapshots":11`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdateUser_Deactivate(t *testing.T) {
	repo := &mockRepo{}
	router := newTestRouter(repo, &mockSettingsRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/admin/users/u-1",
		strings.NewReader(`{"is_active": false}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if active, ok := repo.active["u-1"]; !ok || active {
		t.Errorf("expected u-1 deactivated, got %v", repo.active)
	}
}

func TestUpdateUser_MissingField(t *testing.T) {
	router := newTestRouter(&mockRepo{}, &mockSettingsRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/admin/users/u-1",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateSetting(t *testing.T) {
	settingsRepo := &mockSettingsRepo{}
	router := newTestRouter(&mockRepo{}, settingsRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/admin/settings/daily_analysis_limit",
		strings.NewReader(`{"value": "25"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if settingsRepo.values["daily_analysis_limit"] != "25" {
		t.Errorf("setting not persisted: %v", settingsRepo.values)
	}
}
