package views

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"rental_browser/api"
	"rental_browser/models"
	"rental_browser/querystate"
	"rental_browser/router"
	"rental_browser/styles"
	"rental_browser/suggest"
)

const (
	defaultPageSize = 20
	noticeDuration  = 2 * time.Second
)

// PropertyAPI is the part of api.Client the views use.
type PropertyAPI interface {
	suggest.Source
	ListProperties(ctx context.Context, params api.ListParams) (models.ResultPage, error)
	GetProperty(ctx context.Context, slug string) (models.Property, error)
}

type Deps struct {
	API          PropertyAPI
	PageSize     int
	SuggestDelay time.Duration
}

// Page is one routed screen. Pages are values; Close is called once when
// the route changes so in-flight loads are dropped.
type Page interface {
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	SetSize(w, h int) Page
	Close()
	Help() string
}

type navigateMsg struct {
	loc router.Location
}

type notifyMsg struct {
	text string
}

type clearNotifyMsg struct {
	seq int
}

func navigate(loc router.Location) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{loc: loc}
	}
}

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{text: text}
	}
}

type navItem struct {
	label string
	kind  router.RouteKind
	key   string
}

var navItems = []navItem{
	{label: "Home", kind: router.RouteHome, key: "f1"},
	{label: "Property List", kind: router.RouteSearch, key: "f2"},
}

// App is the root model: header navigation, the routed page, and a status
// line.
type App struct {
	deps     Deps
	history  *router.History
	store    *querystate.Store
	route    router.Route
	page     Page
	startCmd tea.Cmd

	notice    string
	noticeSeq int

	width, height int
}

func NewApp(deps Deps, start router.Location) App {
	if deps.PageSize <= 0 {
		deps.PageSize = defaultPageSize
	}
	if deps.SuggestDelay <= 0 {
		deps.SuggestDelay = suggest.DefaultDelay
	}
	history := router.NewHistory(start)
	a := App{
		deps:    deps,
		history: history,
		store:   querystate.NewStore(history),
	}
	a, cmd := a.open()
	a.startCmd = cmd
	return a
}

func (a App) Init() tea.Cmd {
	return a.startCmd
}

// Location is the current history entry.
func (a App) Location() router.Location {
	return a.history.Current()
}

func (a App) Route() router.Route {
	return a.route
}

// open builds the page for the current history entry.
func (a App) open() (App, tea.Cmd) {
	if a.page != nil {
		a.page.Close()
	}
	loc := a.history.Current()
	a.route = router.Match(loc)
	slog.Info("navigate", "location", loc.String(), "depth", a.history.Len())

	var cmd tea.Cmd
	switch a.route.Kind {
	case router.RouteHome:
		a.page, cmd = NewHome(a.deps)
	case router.RouteSearch:
		a.page, cmd = NewSearch(a.deps, a.store)
	case router.RouteProperty:
		a.page, cmd = NewDetail(a.deps, a.route.Slug)
	default:
		a.page = NotFound{}
	}
	a.page = a.page.SetSize(a.bodySize())
	return a, cmd
}

func (a App) goTo(loc router.Location) (App, tea.Cmd) {
	if loc.String() == a.history.Current().String() {
		return a, nil
	}
	a.history.Push(loc)
	return a.open()
}

func (a App) bodySize() (int, int) {
	if a.height == 0 {
		return a.width, 0
	}
	return a.width, max(1, a.height-4)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.page = a.page.SetSize(a.bodySize())
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.page.Close()
			return a, tea.Quit
		case "esc", "alt+left":
			if a.history.Back() {
				return a.open()
			}
			return a, nil
		case "f1":
			return a.goTo(router.Home())
		case "f2":
			return a.goTo(router.Search(nil))
		}

	case navigateMsg:
		return a.goTo(msg.loc)

	case notifyMsg:
		a.noticeSeq++
		a.notice = msg.text
		seq := a.noticeSeq
		return a, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return clearNotifyMsg{seq: seq}
		})

	case clearNotifyMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

func (a App) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		"",
		a.page.View(),
		"",
		a.renderStatus(),
	)
}

func (a App) renderHeader() string {
	parts := []string{styles.Brand.Render("Explore Rentals")}
	for _, item := range navItems {
		style := styles.NavInactive
		if item.kind == a.route.Kind {
			style = styles.NavActive
		}
		parts = append(parts, style.Render(item.label+" "+item.key))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	loc := styles.Muted.Render(a.history.Current().String())

	gap := a.width - lipgloss.Width(header) - lipgloss.Width(loc)
	if gap < 2 {
		return header
	}
	return header + strings.Repeat(" ", gap) + loc
}

func (a App) renderStatus() string {
	if a.notice != "" {
		return styles.Notification.Render(a.notice)
	}
	hints := []string{"esc back", "ctrl+c quit"}
	if h := a.page.Help(); h != "" {
		hints = append([]string{h}, hints...)
	}
	return styles.StatusBar.Render(strings.Join(hints, " • "))
}

// NotFound is shown for any location no route matches.
type NotFound struct{}

func (NotFound) Update(tea.Msg) (Page, tea.Cmd) { return NotFound{}, nil }
func (NotFound) View() string                 { return styles.ErrorBanner.Render("Page not found.") }
func (n NotFound) SetSize(int, int) Page       { return n }
func (NotFound) Close()                        {}
func (NotFound) Help() string                  { return "f1 home" }
