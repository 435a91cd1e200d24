package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"rental_browser/api"
	"rental_browser/loader"
	"rental_browser/models"
	"rental_browser/styles"
)

const (
	galleryLimit     = 6
	msgNotFound      = "Property not found."
	msgNoDescription = "No description available."
	msgReserveStub   = "Reservations are not available yet."
)

var perks = []string{
	"Instant confirmation",
	"No booking fees",
	"Free cancellation in 24 hours",
}

type propertyMsg struct {
	tok      loader.Token
	property models.Property
	err      error
}

type Detail struct {
	api     PropertyAPI
	slug    string
	tracker *loader.Tracker
	spinner spinner.Model
	state   loader.State[models.Property]

	gallery  []string
	active   int
	viewport viewport.Model

	width, height int
}

func NewDetail(deps Deps, slug string) (Detail, tea.Cmd) {
	d := Detail{
		api:     deps.API,
		slug:    slug,
		tracker: loader.NewTracker(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.AccentColor)),
		),
		viewport: viewport.New(80, 20),
	}
	d.state = d.state.Start()

	tok := d.tracker.Begin(context.Background())
	slog.Debug("loading property", "slug", slug, "request_id", tok.RequestID)

	client := d.api
	fetch := func() tea.Msg {
		p, err := client.GetProperty(tok.Context(), slug)
		return propertyMsg{tok: tok, property: p, err: err}
	}
	return d, tea.Batch(fetch, d.spinner.Tick)
}

func (d Detail) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case propertyMsg:
		if !d.tracker.Accept(msg.tok) {
			return d, nil
		}
		if msg.err != nil {
			level := slog.LevelWarn
			if errors.Is(msg.err, api.ErrNotFound) {
				level = slog.LevelInfo
			}
			slog.Log(context.Background(), level, "property load failed",
				"slug", d.slug, "err", msg.err, "request_id", msg.tok.RequestID)
			d.state = d.state.Fail(msgNotFound)
			return d, nil
		}
		d.state = d.state.Succeed(msg.property)
		d.gallery = msg.property.Gallery(galleryLimit)
		d.active = 0
		d.refresh()
		d.viewport.GotoTop()
		return d, nil

	case spinner.TickMsg:
		if !d.state.Loading() {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if d.state.Status != loader.Success {
			return d, nil
		}
		switch msg.String() {
		case "left", "h":
			if d.active > 0 {
				d.active--
				d.refresh()
			}
			return d, nil
		case "right", "l":
			if d.active < len(d.gallery)-1 {
				d.active++
				d.refresh()
			}
			return d, nil
		case "r":
			slog.Info("reserve requested", "slug", d.slug)
			return d, notify(msgReserveStub)
		}
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *Detail) refresh() {
	if d.state.Status == loader.Success {
		d.viewport.SetContent(d.renderProperty())
	}
}

func (d Detail) SetSize(w, h int) Page {
	d.width, d.height = w, h
	if w > 0 {
		d.viewport.Width = w
	}
	if h > 0 {
		d.viewport.Height = h
	}
	d.refresh()
	return d
}

func (d Detail) Close() {
	d.tracker.Stop()
}

func (d Detail) Help() string {
	if d.state.Status == loader.Success {
		return "←/→ image • ↑/↓ scroll • r reserve"
	}
	return ""
}

func (d Detail) View() string {
	switch d.state.Status {
	case loader.Success:
		return d.viewport.View()
	case loader.Failure:
		return styles.ErrorBanner.Render(msgNotFound)
	}
	return fmt.Sprintf(" %s Loading property…", d.spinner.View())
}

func (d Detail) contentWidth() int {
	w := d.viewport.Width - 2
	if w <= 20 {
		return 60
	}
	return min(w, 100)
}

func (d Detail) renderProperty() string {
	p := d.state.Data
	width := d.contentWidth()

	var b strings.Builder
	b.WriteString(styles.Title.Render(p.Title) + "\n")
	b.WriteString(styles.Muted.Padding(0, 1).Render(placeOf(p.Location)) + "\n\n")

	b.WriteString(styles.Heading.Render(fmt.Sprintf("Photos (%d/%d)", d.active+1, len(d.gallery))) + "\n")
	for i, u := range d.gallery {
		marker := "  "
		line := styles.Muted.Render(truncate(u, width-4))
		if i == d.active {
			marker = styles.Price.Render("▸ ")
			line = truncate(u, width-4)
		}
		b.WriteString(" " + marker + line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		" ",
		styles.Chip.Render(plural(p.Bedrooms, "Bedroom", "Bedrooms")),
		" ",
		styles.Chip.Render(plural(p.Bathrooms, "Bathroom", "Bathrooms")),
		" ",
		styles.Chip.Render(plural(p.MaxGuests, "Guest", "Guests")),
	) + "\n\n")

	b.WriteString(styles.Heading.Render("About this property") + "\n")
	desc := plainText(p.Description)
	if desc == "" {
		desc = msgNoDescription
	}
	b.WriteString(lipgloss.NewStyle().Padding(0, 1).Render(wrapParagraphs(desc, width-2)) + "\n\n")

	var perkLines []string
	for _, perk := range perks {
		perkLines = append(perkLines, styles.StatusSuccess.Render("✓ ")+perk)
	}
	box := lipgloss.JoinVertical(lipgloss.Left,
		styles.Price.Render(p.PricePerNight.String())+" per night",
		"",
		strings.Join(perkLines, "\n"),
		"",
		styles.Brand.Render("Reserve Now")+styles.Muted.Render("  (r)"),
	)
	b.WriteString(styles.Panel.Render(box))
	return b.String()
}

func placeOf(l models.Location) string {
	var parts []string
	for _, s := range []string{l.City, l.State, l.Country} {
		if s != "" && s != l.Name {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return l.Name
	}
	if l.Name == "" {
		return strings.Join(parts, ", ")
	}
	return l.Name + " • " + strings.Join(parts, ", ")
}
