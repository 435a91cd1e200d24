package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"rental_browser/api"
	"rental_browser/loader"
	"rental_browser/models"
	"rental_browser/querystate"
	"rental_browser/router"
	"rental_browser/styles"
)

const (
	msgLoadFailed   = "Failed to load properties."
	msgNoResults    = "No properties match your search."
	cardWidth       = 38
	cardHeight      = 7
	maxDotsPages    = 15
	searchChromeRow = 9
)

type focusArea int

const (
	focusBar focusArea = iota
	focusMin
	focusMax
	focusResults
	focusCount
)

type resultsMsg struct {
	tok  loader.Token
	page models.ResultPage
	err  error
}

// Search is the filterable, paginated result list. Its filters live in the
// current location's query string; the page only caches what it last
// loaded for.
type Search struct {
	api      PropertyAPI
	store    *querystate.Store
	tracker  *loader.Tracker
	pageSize int

	focus    focusArea
	bar      SearchBar
	minPrice textinput.Model
	maxPrice textinput.Model
	spinner  spinner.Model
	pager    paginator.Model

	current  querystate.State
	synced   bool
	results  loader.State[models.ResultPage]
	selected int

	width, height int
}

func NewSearch(deps Deps, store *querystate.Store) (Search, tea.Cmd) {
	st := store.Read()

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = deps.PageSize
	pager.ActiveDot = lipgloss.NewStyle().Foreground(styles.AccentColor).Render("•")
	pager.InactiveDot = styles.Muted.Render("•")

	s := Search{
		api:      deps.API,
		store:    store,
		tracker:  loader.NewTracker(),
		pageSize: deps.PageSize,
		bar:      NewSearchBar(deps.API, deps.SuggestDelay, st.Location),
		minPrice: priceInput("Min $", st.MinPrice),
		maxPrice: priceInput("Max $", st.MaxPrice),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.AccentColor)),
		),
		pager: pager,
	}

	var focusCmd tea.Cmd
	if st.Location == "" {
		s, focusCmd = s.setFocus(focusBar)
	} else {
		s, focusCmd = s.setFocus(focusResults)
	}
	s, loadCmd := s.sync()
	return s, tea.Batch(focusCmd, loadCmd)
}

func priceInput(prompt string, b querystate.Bound) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt + " "
	ti.Placeholder = "any"
	ti.CharLimit = 10
	ti.Width = 10
	ti.SetValue(b.String())
	return ti
}

// sync starts a load whenever the location's state differs from the one
// the current results were requested for.
func (s Search) sync() (Search, tea.Cmd) {
	st := s.store.Read()
	if s.synced && st == s.current {
		return s, nil
	}
	s.current, s.synced = st, true
	s.selected = 0
	s.pager.Page = st.Page - 1
	s.results = s.results.Start()

	tok := s.tracker.Begin(context.Background())
	slog.Debug("loading properties",
		"gen", tok.Gen,
		"request_id", tok.RequestID,
		"location", st.Location,
		"page", st.Page,
	)
	return s, tea.Batch(s.load(tok, st.Params(s.pageSize)), s.spinner.Tick)
}

func (s Search) load(tok loader.Token, params api.ListParams) tea.Cmd {
	client := s.api
	return func() tea.Msg {
		page, err := client.ListProperties(tok.Context(), params)
		return resultsMsg{tok: tok, page: page, err: err}
	}
}

func (s Search) write(u querystate.Update) (Search, tea.Cmd) {
	loc := s.store.Write(u)
	slog.Debug("query updated", "location", loc.String())
	return s.sync()
}

func (s Search) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		if !s.tracker.Accept(msg.tok) {
			slog.Debug("dropping stale results", "gen", msg.tok.Gen, "request_id", msg.tok.RequestID)
			return s, nil
		}
		if msg.err != nil {
			slog.Warn("property search failed", "err", msg.err, "request_id", msg.tok.RequestID)
			s.results = s.results.Fail(msgLoadFailed)
			return s, nil
		}
		s.results = s.results.Succeed(msg.page)
		s.pager.TotalPages = msg.page.TotalPages(s.pageSize)
		return s, nil

	case spinner.TickMsg:
		if !s.results.Loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case searchSubmitMsg:
		if msg.id != s.bar.id {
			return s, nil
		}
		loc := s.store.Submit(msg.value)
		slog.Info("search submitted", "location", loc.String())
		var focusCmd, loadCmd tea.Cmd
		s, focusCmd = s.setFocus(focusResults)
		s, loadCmd = s.sync()
		return s, tea.Batch(focusCmd, loadCmd)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.bar, cmd = s.bar.Update(msg)
	cmds = append(cmds, cmd)
	s.minPrice, cmd = s.minPrice.Update(msg)
	cmds = append(cmds, cmd)
	s.maxPrice, cmd = s.maxPrice.Update(msg)
	cmds = append(cmds, cmd)
	return s, tea.Batch(cmds...)
}

func (s Search) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s.setFocus((s.focus + focusCount - 1) % focusCount)
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusBar:
		s.bar, cmd = s.bar.Update(msg)
		return s, cmd
	case focusMin:
		return s.editPrice(msg, &s.minPrice, querystate.KeyMinPrice)
	case focusMax:
		return s.editPrice(msg, &s.maxPrice, querystate.KeyMaxPrice)
	}
	return s.resultsKey(msg)
}

// editPrice feeds a key to a price input and writes the filter when the
// text changed. Text that is not a non-negative number is rejected.
func (s Search) editPrice(msg tea.KeyMsg, input *textinput.Model, key string) (Page, tea.Cmd) {
	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	after := input.Value()
	if after == before {
		return s, cmd
	}
	if !querystate.ValidBound(after) {
		input.SetValue(before)
		return s, cmd
	}
	var load tea.Cmd
	s, load = s.write(querystate.Update{key: strings.TrimSpace(after)})
	return s, tea.Batch(cmd, load)
}

func (s Search) resultsKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	pres := Present(s.results, s.pageSize)
	items := s.results.Data.Items
	cols := s.columns()

	switch key := msg.String(); key {
	case "[", "pgup":
		if pres.ShowPager && s.current.Page > 1 {
			return s.write(querystate.Update{querystate.KeyPage: strconv.Itoa(s.current.Page - 1)})
		}
	case "]", "pgdown":
		if pres.ShowPager && s.current.Page < pres.TotalPages {
			return s.write(querystate.Update{querystate.KeyPage: strconv.Itoa(s.current.Page + 1)})
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		p, _ := strconv.Atoi(key)
		if pres.ShowPager && p <= pres.TotalPages && p != s.current.Page {
			return s.write(querystate.Update{querystate.KeyPage: key})
		}
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l":
		if s.selected < len(items)-1 {
			s.selected++
		}
	case "up", "k":
		if s.selected-cols >= 0 {
			s.selected -= cols
		}
	case "down", "j":
		if s.selected+cols < len(items) {
			s.selected += cols
		}
	case "enter":
		if pres.Block == BlockResults && s.selected < len(items) {
			return s, navigate(router.Property(items[s.selected].Slug))
		}
	}
	return s, nil
}

func (s Search) setFocus(f focusArea) (Search, tea.Cmd) {
	s.focus = f
	s.bar = s.bar.Blur()
	s.minPrice.Blur()
	s.maxPrice.Blur()

	var cmd tea.Cmd
	switch f {
	case focusBar:
		s.bar, cmd = s.bar.Focus()
	case focusMin:
		cmd = s.minPrice.Focus()
	case focusMax:
		cmd = s.maxPrice.Focus()
	}
	return s, cmd
}

func (s Search) SetSize(w, h int) Page {
	s.width, s.height = w, h
	return s
}

func (s Search) Close() {
	s.tracker.Stop()
	s.bar.Close()
}

func (s Search) Help() string {
	if s.focus == focusResults {
		return "tab focus • arrows select • enter open • [/] page"
	}
	return "tab focus • enter search"
}

func (s Search) columns() int {
	if s.width <= 0 {
		return 2
	}
	return max(1, s.width/(cardWidth+2))
}

func (s Search) View() string {
	barWidth := s.width
	if barWidth <= 0 || barWidth > 72 {
		barWidth = 72
	}

	filters := lipgloss.JoinHorizontal(lipgloss.Top,
		inputBox(s.minPrice, s.focus == focusMin),
		" ",
		inputBox(s.maxPrice, s.focus == focusMax),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Heading.Render(s.current.Label()),
		s.bar.View(barWidth),
		filters,
		s.renderResults(),
	)
}

func inputBox(ti textinput.Model, focused bool) string {
	if focused {
		return styles.InputFocused.Render(ti.View())
	}
	return styles.InputBlurred.Render(ti.View())
}

func (s Search) renderResults() string {
	pres := Present(s.results, s.pageSize)
	switch pres.Block {
	case BlockSpinner:
		return fmt.Sprintf(" %s Loading properties…", s.spinner.View())
	case BlockError:
		return styles.ErrorBanner.Render(msgLoadFailed)
	case BlockEmpty:
		return styles.Muted.Padding(1, 1).Render(msgNoResults)
	}

	page := s.results.Data
	lines := []string{
		styles.Muted.Padding(0, 1).Render(plural(page.TotalCount, "property found", "properties found")),
		s.renderGrid(page.Items),
	}
	if pres.ShowPager {
		lines = append(lines, s.renderPager(pres.TotalPages))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderGrid lays cards out in rows and shows the window of rows that
// contains the selection.
func (s Search) renderGrid(items []models.PropertySummary) string {
	cols := s.columns()
	var rows []string
	for i := 0; i < len(items); i += cols {
		end := min(i+cols, len(items))
		var cards []string
		for j := i; j < end; j++ {
			cards = append(cards, renderCard(items[j], s.focus == focusResults && j == s.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	visible := len(rows)
	if s.height > 0 {
		visible = max(1, (s.height-searchChromeRow)/cardHeight)
	}
	if visible < len(rows) {
		first := max(0, s.selected/cols-visible+1)
		rows = rows[first:min(first+visible, len(rows))]
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(p models.PropertySummary, selected bool) string {
	inner := cardWidth - 4
	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(truncate(p.Title, inner)),
		styles.Muted.Render(truncate(p.Place(), inner)),
		styles.Price.Render(p.PricePerNight.String())+" / night",
		fmt.Sprintf("%d bed · %d bath · %d guests", p.Bedrooms, p.Bathrooms, p.MaxGuests),
		styles.Muted.Render(truncate(p.ImageURL(), inner)),
	)
	return style.Width(cardWidth - 2).Render(body)
}

func (s Search) renderPager(total int) string {
	text := fmt.Sprintf("Page %d of %d", s.current.Page, total)
	if total > 1 && total <= maxDotsPages {
		text += "  " + s.pager.View()
	}
	return styles.StatusBar.Render(text)
}
