package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"rental_browser/api"
	"rental_browser/models"
	"rental_browser/querystate"
	"rental_browser/router"
)

type fakeAPI struct {
	mu          sync.Mutex
	pages       map[string]models.ResultPage
	listErr     error
	listCalls   []api.ListParams
	property    models.Property
	propErr     error
	suggestions []string
}

func (f *fakeAPI) ListProperties(ctx context.Context, p api.ListParams) (models.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, p)
	if f.listErr != nil {
		return models.ResultPage{}, f.listErr
	}
	return f.pages[p.Location], nil
}

func (f *fakeAPI) GetProperty(ctx context.Context, slug string) (models.Property, error) {
	if f.propErr != nil {
		return models.Property{}, f.propErr
	}
	if slug != f.property.Slug {
		return models.Property{}, &api.Error{Op: "get property", Status: 404, Err: api.ErrNotFound}
	}
	return f.property, nil
}

func (f *fakeAPI) LocationSuggestions(ctx context.Context, q string) ([]string, error) {
	return f.suggestions, nil
}

var errBoom = errors.New("boom")

func makePage(prefix string, n, total int) models.ResultPage {
	page := models.ResultPage{TotalCount: total, Items: []models.PropertySummary{}}
	for i := 1; i <= n; i++ {
		page.Items = append(page.Items, models.PropertySummary{
			ID:            int64(i),
			Title:         fmt.Sprintf("%s home %d", prefix, i),
			Slug:          fmt.Sprintf("%s-home-%d", strings.ToLower(prefix), i),
			LocationName:  prefix,
			PricePerNight: models.NewPrice("100.00"),
			Bedrooms:      2,
			Bathrooms:     1,
			MaxGuests:     4,
		})
	}
	return page
}

func loadProperty(t *testing.T) models.Property {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "api", "testdata", "property_detail.json"))
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}
	var p models.Property
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	return p
}

func testDeps(f *fakeAPI) Deps {
	return Deps{API: f, PageSize: 20, SuggestDelay: time.Millisecond}
}

func mustParse(t *testing.T, raw string) router.Location {
	t.Helper()
	loc, err := router.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return loc
}

func newStore(t *testing.T, raw string) (*querystate.Store, *router.History) {
	t.Helper()
	h := router.NewHistory(mustParse(t, raw))
	return querystate.NewStore(h), h
}

// collect runs cmd and returns the messages it produces. Commands that do
// not return promptly (cursor blink, spinner frames) are abandoned.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	var walk func(tea.Cmd)
	walk = func(c tea.Cmd) {
		if c == nil {
			return
		}
		ch := make(chan tea.Msg, 1)
		go func() { ch <- c() }()
		select {
		case msg := <-ch:
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, c := range batch {
					walk(c)
				}
				return
			}
			if msg != nil {
				out = append(out, msg)
			}
		case <-time.After(100 * time.Millisecond):
		}
	}
	walk(cmd)
	return out
}

// settle feeds fetch results produced by cmd back into the page and
// returns the remaining messages.
func settle(t *testing.T, p Page, cmd tea.Cmd) (Page, []tea.Msg) {
	t.Helper()
	var rest []tea.Msg
	for _, msg := range collect(t, cmd) {
		switch msg.(type) {
		case resultsMsg, propertyMsg:
			p, _ = p.Update(msg)
		default:
			rest = append(rest, msg)
		}
	}
	return p, rest
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func findNavigate(msgs []tea.Msg) (navigateMsg, bool) {
	for _, m := range msgs {
		if nav, ok := m.(navigateMsg); ok {
			return nav, true
		}
	}
	return navigateMsg{}, false
}
