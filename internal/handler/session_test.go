package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecoponto/internal/logger"
	"ecoponto/internal/service"

	"github.com/gin-gonic/gin"
)

func TestSessionStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	created := 0
	store := NewSessionStore(func() *service.Orchestrator {
		created++
		return service.NewOrchestrator(nil, &service.NominatimProvider{}, service.PositionOptions{}, logger.Discard())
	}, 10*time.Minute, logger.Discard())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	get := func(cookie *http.Cookie) (*service.Orchestrator, []*http.Cookie) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			c.Request.AddCookie(cookie)
		}
		orch := store.Orchestrator(c)
		return orch, w.Result().Cookies()
	}

	first, cookies := get(nil)
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("expected one http-only session cookie, got %+v", cookies)
	}

	again, fresh := get(cookies[0])
	if again != first || len(fresh) != 1 || fresh[0].Value != cookies[0].Value {
		t.Error("known session must reuse its orchestrator and keep its id")
	}

	if _, c := get(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"}); len(c) != 1 {
		t.Error("malformed session id must start a new session")
	}
	if created != 2 || store.Len() != 2 {
		t.Errorf("created = %d, sessions = %d", created, store.Len())
	}

	now = now.Add(5 * time.Minute)
	get(cookies[0])

	now = now.Add(8 * time.Minute)
	if removed := store.Sweep(); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("sessions = %d, want 1", store.Len())
	}
}

func TestSessionStore_SlidingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ttl := 30 * time.Minute
	store := NewSessionStore(func() *service.Orchestrator {
		return service.NewOrchestrator(nil, &service.NominatimProvider{}, service.PositionOptions{}, logger.Discard())
	}, ttl, logger.Discard())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	hit := func(t *testing.T, cookie *http.Cookie) *http.Cookie {
		t.Helper()
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/locate", nil)
		if cookie != nil {
			c.Request.AddCookie(cookie)
		}
		store.Orchestrator(c)
		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected the session cookie on every response, got %d", len(cookies))
		}
		return cookies[0]
	}

	first := hit(t, nil)

	tests := []struct {
		name  string
		after time.Duration
	}{
		{"classify at minute 29", 29 * time.Minute},
		{"search at minute 31", 2 * time.Minute},
		{"search at minute 55", 24 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = now.Add(tt.after)
			got := hit(t, first)
			if got.Value != first.Value {
				t.Errorf("session id changed from %s to %s", first.Value, got.Value)
			}
			if got.MaxAge != int(ttl.Seconds()) {
				t.Errorf("Max-Age = %d, want %d", got.MaxAge, int(ttl.Seconds()))
			}
			if store.Sweep() != 0 || store.Len() != 1 {
				t.Error("active session must not be swept")
			}
		})
	}
}
