package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/ports"
)

var ErrSessionNotFound = errors.New("services: session not found")

// Session is one viewer's engine.
type Session struct {
	ID        string
	CreatedAt time.Time
	Engine    *VibeEngine

	lastSeen atomic.Int64 // unix nanoseconds
}

// LastSeen is the last time the session was looked up or created.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load()).UTC()
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// SessionManager owns one VibeEngine per session so that the
// one-request-in-flight rule applies per viewer rather than globally.
type SessionManager struct {
	suggester  ports.SongSuggester
	recorder   ports.OutcomeRecorder
	logger     *log.Logger
	engineOpts []EngineOption
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager wires engines to suggester. recorder may be nil.
func NewSessionManager(suggester ports.SongSuggester, recorder ports.OutcomeRecorder, logger *log.Logger, opts ...EngineOption) *SessionManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SessionManager{
		suggester:  suggester,
		recorder:   recorder,
		logger:     logger,
		engineOpts: opts,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// Create starts a new idle session.
func (m *SessionManager) Create() *Session {
	id := uuid.NewString()

	opts := make([]EngineOption, 0, len(m.engineOpts)+2)
	opts = append(opts, m.engineOpts...)
	opts = append(opts, WithLogger(m.logger.With("session", id)))
	if m.recorder != nil {
		opts = append(opts, WithSettleHook(func(o domain.Outcome) {
			o.SessionID = id
			m.recorder.RecordOutcome(o)
		}))
	}

	now := m.now()
	s := &Session{
		ID:        id,
		CreatedAt: now.UTC(),
		Engine:    NewVibeEngine(m.suggester, opts...),
	}
	s.touch(now)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "session", id)
	return s
}

// Get returns the session and marks it as seen.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// Close removes the session and tears its engine down, cancelling any
// in-flight request.
func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Engine.Close()
	m.logger.Debug("session closed", "session", id)
	return nil
}

// Len reports the number of open sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ReapIdle closes every session not seen for longer than ttl. Sessions with a
// request in flight are kept until it settles. It returns how many were
// closed.
func (m *SessionManager) ReapIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-ttl)

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if !s.LastSeen().Before(cutoff) {
			continue
		}
		if s.Engine.State().Status == domain.StatusLoading {
			continue
		}
		delete(m.sessions, id)
		expired = append(expired, s)
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Engine.Close()
		m.logger.Debug("session expired", "session", s.ID, "last_seen", s.LastSeen())
	}
	return len(expired)
}

// StartReaper runs ReapIdle every interval until ctx is done. A ttl of zero
// or less disables expiry.
func (m *SessionManager) StartReaper(ctx context.Context, ttl, interval time.Duration) {
	if ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = ttl / 2
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				if n := m.ReapIdle(ttl); n > 0 {
					m.logger.Info("expired idle sessions", "count", n, "open", m.Len())
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown closes every session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Engine.Close()
	}
}
