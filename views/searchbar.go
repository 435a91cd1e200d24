package views

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"rental_browser/styles"
	"rental_browser/suggest"
)

var lastBarID int64

type searchSubmitMsg struct {
	id    int
	value string
}

// SearchBar is a location input with debounced autocomplete. Enter
// submits the highlighted suggestion, or the typed text when none is
// highlighted.
type SearchBar struct {
	id       int
	input    textinput.Model
	fetcher  suggest.Fetcher
	selected int
}

func NewSearchBar(src suggest.Source, delay time.Duration, initial string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search by location"
	ti.Prompt = "Location: "
	ti.CharLimit = 120
	ti.SetValue(initial)

	return SearchBar{
		id:       int(atomic.AddInt64(&lastBarID, 1)),
		input:    ti,
		fetcher:  suggest.New(src, delay),
		selected: -1,
	}
}

func (b SearchBar) Focus() (SearchBar, tea.Cmd) {
	cmd := b.input.Focus()
	return b, cmd
}

func (b SearchBar) Blur() SearchBar {
	b.input.Blur()
	b.selected = -1
	return b
}

func (b SearchBar) Focused() bool {
	return b.input.Focused()
}

func (b SearchBar) Value() string {
	return b.input.Value()
}

func (b SearchBar) Suggestions() []string {
	return b.fetcher.Suggestions()
}

func (b SearchBar) Close() {
	b.fetcher.Stop()
}

func (b SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	b.fetcher, cmd = b.fetcher.Update(msg)
	cmds = append(cmds, cmd)

	if key, ok := msg.(tea.KeyMsg); ok && b.input.Focused() {
		switch key.String() {
		case "up":
			if b.selected > -1 {
				b.selected--
			}
			return b, tea.Batch(cmds...)
		case "down":
			if b.selected < len(b.fetcher.Suggestions())-1 {
				b.selected++
			}
			return b, tea.Batch(cmds...)
		case "enter":
			b, cmd = b.submit()
			return b, tea.Batch(append(cmds, cmd)...)
		}
	}

	before := b.input.Value()
	b.input, cmd = b.input.Update(msg)
	cmds = append(cmds, cmd)

	if b.input.Value() != before {
		b.selected = -1
		b.fetcher, cmd = b.fetcher.Change(b.input.Value())
		cmds = append(cmds, cmd)
	}
	if b.selected >= len(b.fetcher.Suggestions()) {
		b.selected = -1
	}
	return b, tea.Batch(cmds...)
}

func (b SearchBar) submit() (SearchBar, tea.Cmd) {
	value := strings.TrimSpace(b.input.Value())
	if s := b.fetcher.Suggestions(); b.selected >= 0 && b.selected < len(s) {
		value = s[b.selected]
	}
	b.input.SetValue(value)
	b.input.CursorEnd()
	b.selected = -1
	b.fetcher = b.fetcher.Clear()

	id := b.id
	return b, func() tea.Msg {
		return searchSubmitMsg{id: id, value: value}
	}
}

func (b SearchBar) View(width int) string {
	box := styles.InputBlurred
	if b.input.Focused() {
		box = styles.InputFocused
	}
	if width > 8 {
		box = box.Width(width - 2)
	}
	lines := []string{box.Render(b.input.View())}

	if b.input.Focused() {
		if b.fetcher.Loading() {
			lines = append(lines, styles.Muted.Render("  searching…"))
		}
		for i, s := range b.fetcher.Suggestions() {
			style := styles.Suggestion
			if i == b.selected {
				style = styles.SuggestionSelected
			}
			lines = append(lines, style.Render(s))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
