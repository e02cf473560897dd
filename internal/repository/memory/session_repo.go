package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"contact-page-backend/internal/domain"
	"contact-page-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

type sessionEntry struct {
	session   domain.FormSession
	expiresAt time.Time
}

// sessionRepo keeps sessions in process memory. Used when Redis is not
// configured; sessions do not survive a restart and are not shared between
// instances.
type sessionRepo struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

// SessionRepository is the in-memory store plus its expiry sweep
type SessionRepository interface {
	domain.SessionRepository
	Sweep() int
	Len() int
}

// NewSessionRepository creates an in-memory session store. Sessions idle
// for longer than ttl are treated as gone.
func NewSessionRepository(ttl time.Duration) SessionRepository {
	return &sessionRepo{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.FormSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[session.ID]; ok && r.now().Before(e.expiresAt) {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	r.entries[session.ID] = &sessionEntry{session: *session, expiresAt: r.now().Add(r.ttl)}
	return nil
}

// Get returns a copy; changes are only visible to others after Save.
func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.FormSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || !r.now().Before(e.expiresAt) {
		return nil, domain.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

// Save stores the session and extends its lifetime
func (r *sessionRepo) Save(ctx context.Context, session *domain.FormSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[session.ID]
	if !ok || !r.now().Before(e.expiresAt) {
		return domain.ErrSessionNotFound
	}
	e.session = *session
	e.expiresAt = r.now().Add(r.ttl)
	return nil
}

// Sweep drops expired sessions and returns how many were removed
func (r *sessionRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *sessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// StartSweeper schedules Sweep on a cron spec such as "@every 5m".
// The returned scheduler is already running; Stop it on shutdown.
func StartSweeper(repo SessionRepository, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := repo.Sweep(); n > 0 {
			logger.Log.Debug("Swept expired contact sessions", "removed", n, "remaining", repo.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session sweep schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
