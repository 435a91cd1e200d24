package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *fakeSource) LocationSuggestions(ctx context.Context, q string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, q)
	if s.err != nil {
		return nil, s.err
	}
	return []string{q + " city", q + " town"}, nil
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestFetcher_DebounceIssuesOneCall(t *testing.T) {
	src := &fakeSource{}
	f := New(src, time.Millisecond)

	var ticks []tea.Cmd
	for _, text := range []string{"a", "ab", "abc"} {
		var cmd tea.Cmd
		f, cmd = f.Change(text)
		ticks = append(ticks, cmd)
	}

	var fetches []tea.Cmd
	for _, tick := range ticks {
		var cmd tea.Cmd
		f, cmd = f.Update(run(t, tick))
		if cmd != nil {
			fetches = append(fetches, cmd)
		}
	}
	if len(fetches) != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", len(fetches))
	}
	if !f.Loading() {
		t.Fatal("expected loading while the fetch is in flight")
	}

	f, _ = f.Update(run(t, fetches[0]))
	if len(src.calls) != 1 || src.calls[0] != "abc" {
		t.Fatalf("expected one call for abc, got %v", src.calls)
	}
	if got := f.Suggestions(); len(got) != 2 || got[0] != "abc city" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if f.Loading() {
		t.Fatal("loading must clear after the result")
	}
}

func TestFetcher_StaleResultNeverOverwrites(t *testing.T) {
	src := &fakeSource{}
	f := New(src, time.Millisecond)

	f, tick1 := f.Change("ro")
	f, fetch1 := f.Update(run(t, tick1))

	f, tick2 := f.Change("rom")
	f, fetch2 := f.Update(run(t, tick2))

	// Newer request completes first, older one afterwards.
	f, _ = f.Update(run(t, fetch2))
	f, _ = f.Update(run(t, fetch1))

	if got := f.Suggestions(); len(got) == 0 || got[0] != "rom city" {
		t.Fatalf("expected suggestions for rom, got %v", got)
	}
}

func TestFetcher_EmptyClearsWithoutFetch(t *testing.T) {
	src := &fakeSource{}
	f := New(src, time.Millisecond)

	f, tick := f.Change("li")
	f, fetch := f.Update(run(t, tick))
	f, _ = f.Update(run(t, fetch))
	if len(f.Suggestions()) == 0 {
		t.Fatal("expected suggestions before clearing")
	}

	f, cmd := f.Change("   ")
	if cmd != nil {
		t.Fatal("empty text must not schedule a fetch")
	}
	if len(f.Suggestions()) != 0 {
		t.Fatalf("expected cleared suggestions, got %v", f.Suggestions())
	}

	// A tick scheduled before the clear is dropped.
	f, tick = f.Change("lis")
	f, _ = f.Change("")
	if _, cmd := f.Update(run(t, tick)); cmd != nil {
		t.Fatal("tick from before the clear must be ignored")
	}
	if len(src.calls) != 1 {
		t.Fatalf("expected 1 call, got %v", src.calls)
	}
}

func TestFetcher_FailureYieldsEmptyList(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	f := New(src, time.Millisecond)

	f, tick := f.Change("x")
	f, fetch := f.Update(run(t, tick))
	f, _ = f.Update(run(t, fetch))

	if f.Suggestions() == nil || len(f.Suggestions()) != 0 {
		t.Fatalf("expected empty suggestions on failure, got %v", f.Suggestions())
	}
	if f.Loading() {
		t.Fatal("loading must clear after failure")
	}
}

func TestFetcher_IgnoresOtherFetchers(t *testing.T) {
	src := &fakeSource{}
	a := New(src, time.Millisecond)
	b := New(src, time.Millisecond)

	a, tick := a.Change("x")
	msg := run(t, tick)
	if _, cmd := b.Update(msg); cmd != nil {
		t.Fatal("fetcher must ignore messages addressed to another fetcher")
	}
}

func TestFetcher_StopDropsPending(t *testing.T) {
	src := &fakeSource{}
	f := New(src, time.Millisecond)

	f, tick := f.Change("x")
	f, fetch := f.Update(run(t, tick))
	f.Stop()
	f, _ = f.Update(run(t, fetch))
	if len(f.Suggestions()) != 0 {
		t.Fatalf("no result may be applied after Stop, got %v", f.Suggestions())
	}
}
