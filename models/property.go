package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderImage is shown when a property has no usable image.
const PlaceholderImage = "https://images.unsplash.com/photo-1464146072230-91cabc968266?w=1200"

// Property is the full listing returned by the detail endpoint
type Property struct {
	ID            int64    `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"max_guests"`
	PricePerNight Price    `json:"price_per_night"`
	Location      Location `json:"location"`
	Images        []Image  `json:"images"`
}

type Location struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type Image struct {
	ID        int64  `json:"id"`
	FinalURL  string `json:"final_url"`
	ImageURL  string `json:"image_url"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

// DisplayURL prefers the resolved URL and falls back to the source URL.
func (img Image) DisplayURL() string {
	if img.FinalURL != "" {
		return img.FinalURL
	}
	return img.ImageURL
}

// Gallery returns up to limit display URLs in server order. A property
// without any usable image gets the placeholder.
func (p Property) Gallery(limit int) []string {
	var urls []string
	for _, img := range p.Images {
		if limit > 0 && len(urls) == limit {
			break
		}
		if u := img.DisplayURL(); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return []string{PlaceholderImage}
	}
	return urls
}

// PropertySummary is one item of a search result page
type PropertySummary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	LocationName    string `json:"location_name"`
	LocationCity    string `json:"location_city"`
	LocationCountry string `json:"location_country"`
	PricePerNight   Price  `json:"price_per_night"`
	Bedrooms        int    `json:"bedrooms"`
	Bathrooms       int    `json:"bathrooms"`
	MaxGuests       int    `json:"max_guests"`
	PrimaryImage    string `json:"primary_image"`
}

func (s PropertySummary) ImageURL() string {
	if s.PrimaryImage == "" {
		return PlaceholderImage
	}
	return s.PrimaryImage
}

// Place renders "name • city, country", omitting empty parts.
func (s PropertySummary) Place() string {
	var parts []string
	for _, p := range []string{s.LocationCity, s.LocationCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	cityCountry := strings.Join(parts, ", ")
	switch {
	case cityCountry == "":
		return s.LocationName
	case s.LocationName == "":
		return cityCountry
	}
	return s.LocationName + " • " + cityCountry
}

// ResultPage is one page of a property search
type ResultPage struct {
	Items      []PropertySummary `json:"results"`
	TotalCount int               `json:"count"`
}

// TotalPages is never less than 1, even for an empty result.
func (r ResultPage) TotalPages(pageSize int) int {
	if pageSize <= 0 || r.TotalCount <= 0 {
		return 1
	}
	return (r.TotalCount + pageSize - 1) / pageSize
}

// Price keeps the server's textual amount. The API sends decimals as
// strings ("120.00") but plain numbers are accepted too.
type Price struct {
	raw string
}

func NewPrice(amount string) Price {
	return Price{raw: strings.TrimSpace(amount)}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		p.raw = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.raw = strings.TrimSpace(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	p.raw = n.String()
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.raw)
}

func (p Price) Amount() string {
	return p.raw
}

// Float returns 0 for a missing or malformed amount.
func (p Price) Float() float64 {
	f, err := strconv.ParseFloat(p.raw, 64)
	if err != nil {
		return 0
	}
	return f
}

func (p Price) String() string {
	if p.raw == "" {
		return "—"
	}
	return "$" + p.raw
}
