package router

import (
	"net/url"
	"strings"
)

const (
	PathHome     = "/"
	PathSearch   = "/search"
	pathProperty = "/property/"
)

// Location is the in-app address: a path plus its query string.
type Location struct {
	Path  string
	Query url.Values
}

// Parse accepts "/search?location=Paris" style addresses. A missing path
// is treated as the home page.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, err
	}
	path := u.EscapedPath()
	if path == "" {
		path = PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: u.Query()}, nil
}

func Home() Location {
	return Location{Path: PathHome}
}

func Search(query url.Values) Location {
	return Location{Path: PathSearch, Query: query}
}

func Property(slug string) Location {
	return Location{Path: pathProperty + url.PathEscape(slug)}
}

// String encodes the query with sorted keys.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = PathHome
	}
	if q := l.Query.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func (l Location) clone() Location {
	c := Location{Path: l.Path, Query: url.Values{}}
	for k, vs := range l.Query {
		c.Query[k] = append([]string(nil), vs...)
	}
	return c
}

type RouteKind int

const (
	RouteNotFound RouteKind = iota
	RouteHome
	RouteSearch
	RouteProperty
)

type Route struct {
	Kind RouteKind
	Slug string
}

func Match(l Location) Route {
	path := l.Path
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	switch {
	case path == "" || path == PathHome:
		return Route{Kind: RouteHome}
	case path == PathSearch:
		return Route{Kind: RouteSearch}
	case strings.HasPrefix(path, pathProperty):
		raw := strings.TrimPrefix(path, pathProperty)
		if raw == "" || strings.Contains(raw, "/") {
			return Route{Kind: RouteNotFound}
		}
		slug, err := url.PathUnescape(raw)
		if err != nil || slug == "" {
			return Route{Kind: RouteNotFound}
		}
		return Route{Kind: RouteProperty, Slug: slug}
	}
	return Route{Kind: RouteNotFound}
}

// History is the navigation stack. It is the only writer of the current
// location; callers always get copies.
type History struct {
	entries []Location
	index   int
}

func NewHistory(start Location) *History {
	return &History{entries: []Location{start.clone()}}
}

func (h *History) Current() Location {
	return h.entries[h.index].clone()
}

// Push records a full navigation and drops any forward entries.
func (h *History) Push(l Location) {
	h.entries = append(h.entries[:h.index+1], l.clone())
	h.index = len(h.entries) - 1
}

// Replace rewrites the current entry in place.
func (h *History) Replace(l Location) {
	h.entries[h.index] = l.clone()
}

func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

func (h *History) Len() int {
	return h.index + 1
}
