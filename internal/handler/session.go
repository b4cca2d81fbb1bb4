package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ecoponto/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionCookie names the cookie carrying the page session id
const SessionCookie = "ecoponto_session"

type session struct {
	orchestrator *service.Orchestrator
	lastSeen     time.Time
}

// SessionStore keeps one orchestrator per browser session, in memory only
type SessionStore struct {
	mu              sync.Mutex
	sessions        map[string]*session
	newOrchestrator func() *service.Orchestrator
	ttl             time.Duration
	now             func() time.Time
	log             logrus.FieldLogger
}

// NewSessionStore creates a store whose sessions expire after ttl without requests
func NewSessionStore(newOrchestrator func() *service.Orchestrator, ttl time.Duration, log logrus.FieldLogger) *SessionStore {
	return &SessionStore{
		sessions:        make(map[string]*session),
		newOrchestrator: newOrchestrator,
		ttl:             ttl,
		now:             time.Now,
		log:             log,
	}
}

// Orchestrator returns the caller's orchestrator, starting a session when the
// cookie is missing, malformed or expired. The cookie is refreshed on every call.
func (s *SessionStore) Orchestrator(c *gin.Context) *service.Orchestrator {
	id, err := c.Cookie(SessionCookie)
	if err == nil {
		if _, perr := uuid.Parse(id); perr != nil {
			id = ""
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if ok && id != "" {
		sess.lastSeen = s.now()
	} else {
		id = uuid.NewString()
		sess = &session{orchestrator: s.newOrchestrator(), lastSeen: s.now()}
		s.sessions[id] = sess
		s.log.WithField("session", id).Debug("session started")
	}

	// re-issued on every hit so the browser expiry slides with lastSeen
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(s.ttl.Seconds()), "/", "", false, true)

	return sess.orchestrator
}

// Sweep drops idle sessions and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps idle sessions until ctx is done
func (s *SessionStore) Run(ctx context.Context) {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.WithField("removed", n).Info("idle sessions swept")
			}
		}
	}
}
