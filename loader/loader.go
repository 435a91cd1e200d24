package loader

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"rental_browser/api"
)

// Token identifies one fetch. Its context is cancelled as soon as a newer
// fetch begins or the tracker is stopped.
type Token struct {
	Gen       uint64
	RequestID string

	owner *Tracker
	ctx   context.Context
}

func (t Token) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Tracker hands out tokens for a single view. Only the most recent token
// is current; completing a stale one must not touch view state.
type Tracker struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	stopped bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin supersedes the previous fetch and cancels its request.
func (t *Tracker) Begin(parent context.Context) Token {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.gen++

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(api.WithRequestID(parent, id))
	t.cancel = cancel
	if t.stopped {
		cancel()
	}
	return Token{Gen: t.gen, RequestID: id, owner: t, ctx: ctx}
}

func (t *Tracker) Current(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentLocked(tok)
}

func (t *Tracker) currentLocked(tok Token) bool {
	return tok.owner == t && !t.stopped && tok.Gen == t.gen
}

// Accept reports whether tok is current and, if so, releases its context.
// Call it once when the fetch result arrives.
func (t *Tracker) Accept(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.currentLocked(tok) {
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return true
}

// Invalidate makes every issued token stale without starting a new fetch.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

// Stop is called on view teardown. No token is current afterwards.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "idle"
}

// State is the lifecycle of one fetched value: Idle -> Loading ->
// Success|Failure, back to Loading whenever the inputs change.
type State[T any] struct {
	Status Status
	Data   T
	Err    string
}

// Start drops the previous result; results are replaced, never merged.
func (s State[T]) Start() State[T] {
	var zero T
	return State[T]{Status: Loading, Data: zero}
}

func (s State[T]) Succeed(v T) State[T] {
	return State[T]{Status: Success, Data: v}
}

func (s State[T]) Fail(msg string) State[T] {
	var zero T
	return State[T]{Status: Failure, Data: zero, Err: msg}
}

func (s State[T]) Loading() bool {
	return s.Status == Idle || s.Status == Loading
}
