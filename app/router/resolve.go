// Package router maps the navigation fragment to the list or post view.
package router

import (
	"strings"

	"blogview/app/models"
)

// State is a router state.
type State int

const (
	StateList State = iota
	StatePost
)

func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StatePost:
		return "post"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View is the outcome of resolving a fragment: the markup for both render
// areas and whether the fragment must be cleared afterwards.
type View struct {
	State         State  `json:"state"`
	Slug          string `json:"slug,omitempty"`
	Featured      string `json:"featured"`
	Grid          string `json:"grid"`
	ClearFragment bool   `json:"clear_fragment"`
}

// ParseFragment strips the first '#' and surrounding whitespace. The result
// is compared against post keys as is, without normalizing.
func ParseFragment(raw string) string {
	return strings.TrimSpace(strings.Replace(raw, "#", "", 1))
}

// Resolve computes the view for a fragment. It does not touch any navigator,
// so a fragment that names no post yields the list view with ClearFragment
// set instead of a second resolution.
func Resolve(r Renderer, s Store, c models.Collection, fragment string) View {
	if c.Failed() {
		return View{State: StateList, Featured: r.LoadFailure()}
	}

	slug := ParseFragment(fragment)
	if slug == "" {
		return list(r, s, c)
	}

	if p, ok := s.FindBySlug(c, slug); ok {
		return View{State: StatePost, Slug: slug, Grid: r.Full(p)}
	}

	v := list(r, s, c)
	v.ClearFragment = true
	return v
}

func list(r Renderer, s Store, c models.Collection) View {
	v := View{State: StateList}
	sorted := s.SortedDescending(c)

	if len(sorted) == 0 {
		v.Featured = r.EmptyList()
		v.Grid = r.EmptyGrid()
		return v
	}

	v.Featured = r.Featured(sorted[0])
	rest := sorted[1:]
	if len(rest) == 0 {
		v.Grid = r.EmptyGrid()
		return v
	}

	var sb strings.Builder
	for _, p := range rest {
		sb.WriteString(r.Card(p))
	}
	v.Grid = sb.String()
	return v
}
