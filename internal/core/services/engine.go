package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/ports"
)

// DefaultRequestTimeout bounds a single call to the song suggester.
const DefaultRequestTimeout = 30 * time.Second

// ErrEngineClosed is returned by Await once the engine has been torn down.
var ErrEngineClosed = errors.New("services: engine closed")

// VibeEngine runs the vibe request lifecycle for one viewer: at most one
// request in flight, every failure collapsed into domain.ErrorMessage.
type VibeEngine struct {
	suggester ports.SongSuggester
	logger    *log.Logger
	timeout   time.Duration
	onSettle  func(domain.Outcome)
	now       func() time.Time

	store *StateStore

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

type EngineOption func(*VibeEngine)

// WithTimeout sets the per-request deadline. Zero or less disables it.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *VibeEngine) { e.timeout = d }
}

func WithLogger(l *log.Logger) EngineOption {
	return func(e *VibeEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSettleHook registers fn to run after every terminal transition.
func WithSettleHook(fn func(domain.Outcome)) EngineOption {
	return func(e *VibeEngine) { e.onSettle = fn }
}

// NewVibeEngine constructs an idle engine around an injected suggester.
func NewVibeEngine(suggester ports.SongSuggester, opts ...EngineOption) *VibeEngine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &VibeEngine{
		suggester: suggester,
		logger:    log.Default(),
		timeout:   DefaultRequestTimeout,
		now:       time.Now,
		store:     NewStateStore(domain.IdleState()),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit starts a request for prompt and returns immediately. It returns
// false, changing nothing, when the trimmed prompt is empty, a request is
// already in flight, or the engine is closed.
func (e *VibeEngine) Submit(prompt string) bool {
	vibe, ok := domain.NormalizePrompt(prompt)
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	if e.store.Current().Status == domain.StatusLoading {
		e.logger.Debug("vibe submit ignored, request in flight")
		return false
	}

	e.store.set(domain.LoadingState())
	e.inflight.Add(1)
	go e.run(vibe)

	return true
}

func (e *VibeEngine) run(vibe string) {
	defer e.inflight.Done()

	ctx, cancel := e.requestContext()
	defer cancel()

	started := e.now()
	songs, err := e.suggester.SuggestSongs(ctx, vibe)
	elapsed := e.now().Sub(started)

	next := domain.SuccessState(songs)
	if err != nil {
		next = domain.ErrorState(domain.ErrorMessage)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.logger.Debug("engine closed before request settled", "err", err)
		return
	}
	e.store.set(next)
	e.mu.Unlock()

	if err != nil {
		e.logger.Error("vibe request failed", "err", err, "duration", elapsed)
	} else {
		e.logger.Info("vibe request settled", "songs", len(next.Songs), "duration", elapsed)
	}

	if e.onSettle != nil {
		e.onSettle(domain.Outcome{
			Status:    next.Status,
			SongCount: len(next.Songs),
			Duration:  elapsed,
			At:        started,
		})
	}
}

func (e *VibeEngine) requestContext() (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(e.ctx)
	}
	return context.WithTimeout(e.ctx, e.timeout)
}

// State returns the current snapshot.
func (e *VibeEngine) State() domain.State {
	return e.store.Current()
}

// Subscribe observes state transitions. See StateStore.Subscribe.
func (e *VibeEngine) Subscribe() (<-chan domain.State, func()) {
	return e.store.Subscribe()
}

// Await blocks until no request is in flight and returns that state.
func (e *VibeEngine) Await(ctx context.Context) (domain.State, error) {
	ch, unsubscribe := e.store.Subscribe()
	defer unsubscribe()

	for {
		select {
		case st, ok := <-ch:
			if !ok {
				return e.store.Current(), ErrEngineClosed
			}
			if st.Settled() {
				return st, nil
			}
		case <-ctx.Done():
			return e.store.Current(), ctx.Err()
		}
	}
}

// Close cancels any in-flight request, waits for it to return and closes all
// subscriptions. The state is frozen from here on.
func (e *VibeEngine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.cancel()
	e.mu.Unlock()

	e.inflight.Wait()
	e.store.close()
}
