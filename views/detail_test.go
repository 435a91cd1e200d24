package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"rental_browser/models"
)

func TestDetail_RendersProperty(t *testing.T) {
	f := &fakeAPI{property: loadProperty(t)}
	d, cmd := NewDetail(testDeps(f), "loft-near-canal-saint-martin")
	p, _ := settle(t, d.SetSize(100, 60), cmd)

	view := p.View()
	for _, want := range []string{
		"Loft near Canal Saint-Martin",
		"Paris • Ile-de-France, France",
		"https://cdn.example.com/p/11.jpg",
		"https://img.example.com/11-2.jpg",
		"2 Bedrooms",
		"1 Bathroom",
		"4 Guests",
		"About this property",
		"Bright loft with canal views.",
		"$185.00 per night",
		"Free cancellation in 24 hours",
		"Reserve Now",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "<strong>") {
		t.Fatal("description markup must be stripped")
	}
}

func TestDetail_NotFoundHidesPropertyBlocks(t *testing.T) {
	f := &fakeAPI{property: loadProperty(t)}
	d, cmd := NewDetail(testDeps(f), "missing")
	p, _ := settle(t, d, cmd)

	view := p.View()
	if !strings.Contains(view, msgNotFound) {
		t.Fatalf("expected not found message, got:\n%s", view)
	}
	for _, unwanted := range []string{"per night", "Reserve Now", "Photos"} {
		if strings.Contains(view, unwanted) {
			t.Fatalf("failure view must not contain %q", unwanted)
		}
	}
}

func TestDetail_GallerySelection(t *testing.T) {
	f := &fakeAPI{property: loadProperty(t)}
	d, cmd := NewDetail(testDeps(f), "loft-near-canal-saint-martin")
	p, _ := settle(t, d, cmd)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := p.(Detail).active; got != 1 {
		t.Fatalf("expected active image 1, got %d", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := p.(Detail).active; got != 1 {
		t.Fatalf("selection must stop at the last image, got %d", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := p.(Detail).active; got != 0 {
		t.Fatalf("expected active image 0, got %d", got)
	}
}

func TestDetail_PlaceholderAndEmptyDescription(t *testing.T) {
	prop := models.Property{Slug: "bare", Title: "Bare cabin", PricePerNight: models.NewPrice("50")}
	f := &fakeAPI{property: prop}
	d, cmd := NewDetail(testDeps(f), "bare")
	p, _ := settle(t, d, cmd)

	view := p.View()
	if !strings.Contains(view, msgNoDescription) {
		t.Fatal("expected description fallback")
	}
	if !strings.Contains(view, models.PlaceholderImage[:40]) {
		t.Fatal("expected placeholder image")
	}
}

func TestDetail_ReserveNotifies(t *testing.T) {
	f := &fakeAPI{property: loadProperty(t)}
	d, cmd := NewDetail(testDeps(f), "loft-near-canal-saint-martin")
	p, _ := settle(t, d, cmd)

	_, cmd = p.Update(keyRunes("r"))
	msgs := collect(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if n, ok := msgs[0].(notifyMsg); !ok || n.text != msgReserveStub {
		t.Fatalf("unexpected message %#v", msgs[0])
	}
}
