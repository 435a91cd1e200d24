package querystate

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"rental_browser/api"
	"rental_browser/router"
)

// Recognised query keys.
const (
	KeyLocation = "location"
	KeyQuery    = "q"
	KeyPage     = "page"
	KeyMinPrice = "min_price"
	KeyMaxPrice = "max_price"
)

// Bound is an optional numeric filter.
type Bound struct {
	Value float64
	Valid bool
}

func (b Bound) String() string {
	if !b.Valid {
		return ""
	}
	return strconv.FormatFloat(b.Value, 'f', -1, 64)
}

// State is the filter/page state of the result list. It is always derived
// from a location's query string and is comparable, so two reads can be
// checked for equality.
type State struct {
	Location string
	Query    string
	Page     int
	MinPrice Bound
	MaxPrice Bound
}

func Parse(q url.Values) State {
	st := State{
		Location: q.Get(KeyLocation),
		Query:    q.Get(KeyQuery),
		Page:     1,
		MinPrice: parseBound(q.Get(KeyMinPrice)),
		MaxPrice: parseBound(q.Get(KeyMaxPrice)),
	}
	if p, err := strconv.Atoi(strings.TrimSpace(q.Get(KeyPage))); err == nil && p >= 1 {
		st.Page = p
	}
	return st
}

func parseBound(s string) Bound {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bound{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return Bound{}
	}
	return Bound{Value: f, Valid: true}
}

// ValidBound reports whether s may be written as a price filter. Empty
// clears the filter and is valid.
func ValidBound(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || parseBound(s).Valid
}

// Params builds the API request for this state.
func (s State) Params(pageSize int) api.ListParams {
	return api.ListParams{
		Page:     s.Page,
		PageSize: pageSize,
		Location: s.Location,
		Query:    s.Query,
		MinPrice: s.MinPrice.String(),
		MaxPrice: s.MaxPrice.String(),
	}
}

// Label is the heading of the result list.
func (s State) Label() string {
	switch {
	case s.Location != "":
		return fmt.Sprintf("Results for %q", s.Location)
	case s.Query != "":
		return fmt.Sprintf("Results for %q", s.Query)
	}
	return "All properties"
}

// Update is a partial write: key -> new value. An empty value removes
// the key.
type Update map[string]string

// Store maps the current history entry's query string to State. The
// history is the source of truth; Store keeps no copy.
type Store struct {
	history *router.History
	path    string
}

func NewStore(history *router.History) *Store {
	return &Store{history: history, path: router.PathSearch}
}

func (s *Store) Read() State {
	return Parse(s.history.Current().Query)
}

// Write applies u to the current query and replaces the history entry.
// Page goes back to 1 unless u sets it.
func (s *Store) Write(u Update) router.Location {
	next := Apply(s.history.Current().Query, u)
	loc := router.Location{Path: s.path, Query: next}
	s.history.Replace(loc)
	return loc
}

// Submit starts a new search for location as a full navigation.
func (s *Store) Submit(location string) router.Location {
	loc := router.Search(Apply(s.history.Current().Query, Update{
		KeyLocation: strings.TrimSpace(location),
		KeyQuery:    "",
		KeyPage:     "1",
	}))
	s.history.Push(loc)
	return loc
}

// Apply returns a copy of q with u applied.
func Apply(q url.Values, u Update) url.Values {
	next := url.Values{}
	for k, vs := range q {
		next[k] = append([]string(nil), vs...)
	}
	for k, v := range u {
		if v == "" {
			next.Del(k)
			continue
		}
		next.Set(k, v)
	}
	if _, ok := u[KeyPage]; !ok {
		next.Set(KeyPage, "1")
	}
	return next
}
