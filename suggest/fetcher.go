package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"rental_browser/loader"
)

// DefaultDelay is the quiet period between the last keystroke and the
// suggestion request.
const DefaultDelay = 250 * time.Millisecond

// Source returns location names matching a prefix.
type Source interface {
	LocationSuggestions(ctx context.Context, q string) ([]string, error)
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type tickMsg struct {
	id   int
	tok  loader.Token
	term string
}

type resultMsg struct {
	id    int
	tok   loader.Token
	items []string
	err   error
}

// Fetcher turns free text into rate-limited autocomplete requests. Every
// change supersedes the pending tick and any request in flight, so only
// the newest term's result is ever applied.
type Fetcher struct {
	id      int
	src     Source
	delay   time.Duration
	tracker *loader.Tracker

	term        string
	suggestions []string
	loading     bool
}

func New(src Source, delay time.Duration) Fetcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return Fetcher{
		id:      nextID(),
		src:     src,
		delay:   delay,
		tracker: loader.NewTracker(),
	}
}

// Change records new input text. Empty text clears the suggestions at
// once without scheduling a request.
func (f Fetcher) Change(text string) (Fetcher, tea.Cmd) {
	term := strings.TrimSpace(text)
	if term == f.term && term != "" {
		return f, nil
	}
	f.term = term
	if term == "" {
		f.tracker.Invalidate()
		f.suggestions = nil
		f.loading = false
		return f, nil
	}

	tok := f.tracker.Begin(context.Background())
	id := f.id
	return f, tea.Tick(f.delay, func(time.Time) tea.Msg {
		return tickMsg{id: id, tok: tok, term: term}
	})
}

// Clear hides the current suggestions and drops anything pending.
func (f Fetcher) Clear() Fetcher {
	f.tracker.Invalidate()
	f.term = ""
	f.suggestions = nil
	f.loading = false
	return f
}

func (f Fetcher) Update(msg tea.Msg) (Fetcher, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != f.id || !f.tracker.Current(msg.tok) {
			return f, nil
		}
		f.loading = true
		return f, f.fetch(msg.tok, msg.term)

	case resultMsg:
		if msg.id != f.id || !f.tracker.Accept(msg.tok) {
			return f, nil
		}
		f.loading = false
		if msg.err != nil {
			slog.Debug("location suggestions failed", "err", msg.err, "request_id", msg.tok.RequestID)
			f.suggestions = []string{}
			return f, nil
		}
		f.suggestions = msg.items
	}
	return f, nil
}

func (f Fetcher) fetch(tok loader.Token, term string) tea.Cmd {
	src, id := f.src, f.id
	return func() tea.Msg {
		items, err := src.LocationSuggestions(tok.Context(), term)
		return resultMsg{id: id, tok: tok, items: items, err: err}
	}
}

// Stop drops pending work; used when the owning view goes away.
func (f Fetcher) Stop() {
	f.tracker.Stop()
}

func (f Fetcher) Suggestions() []string {
	return f.suggestions
}

func (f Fetcher) Loading() bool {
	return f.loading
}

func (f Fetcher) Term() string {
	return f.term
}
