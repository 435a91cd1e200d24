package views

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"rental_browser/querystate"
	"rental_browser/router"
	"rental_browser/styles"
)

// Home is the landing screen: a title and the location search.
type Home struct {
	bar           SearchBar
	width, height int
}

func NewHome(deps Deps) (Home, tea.Cmd) {
	bar, cmd := NewSearchBar(deps.API, deps.SuggestDelay, "").Focus()
	return Home{bar: bar}, cmd
}

func (h Home) Update(msg tea.Msg) (Page, tea.Cmd) {
	if m, ok := msg.(searchSubmitMsg); ok && m.id == h.bar.id {
		q := url.Values{}
		if m.value != "" {
			q.Set(querystate.KeyLocation, m.value)
		}
		return h, navigate(router.Search(q))
	}

	var cmd tea.Cmd
	h.bar, cmd = h.bar.Update(msg)
	return h, cmd
}

func (h Home) SetSize(w, height int) Page {
	h.width, h.height = w, height
	return h
}

func (h Home) Close() {
	h.bar.Close()
}

func (h Home) Help() string {
	return "type a location • ↑/↓ suggestion • enter search"
}

func (h Home) View() string {
	width := h.width
	if width <= 0 || width > 72 {
		width = 72
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		styles.Title.Render("Find your next vacation rental"),
		styles.Muted.Padding(0, 1).Render("Search by location to view available properties."),
		"",
		h.bar.View(width),
	)
}
