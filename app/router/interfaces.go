package router

import (
	"context"

	"blogview/app/models"
)

// Navigator is the source of the navigation fragment.
type Navigator interface {
	// Fragment returns the current raw fragment, with or without its '#'.
	Fragment() string
	// SetFragment replaces the fragment and notifies watchers.
	SetFragment(fragment string)
	// Watch returns a channel that receives the fragment after every change,
	// in order. The channel closes when the navigator closes or ctx ends.
	Watch(ctx context.Context) <-chan string
}

// Target is a container the router writes markup into.
type Target interface {
	SetContent(markup string)
}

// Renderer produces the markup fragments for each view.
type Renderer interface {
	Featured(p models.Post) string
	Card(p models.Post) string
	Full(p models.Post) string
	EmptyList() string
	EmptyGrid() string
	LoadFailure() string
}

// Store answers list and lookup queries against a collection.
type Store interface {
	SortedDescending(c models.Collection) []models.Post
	FindBySlug(c models.Collection, key string) (models.Post, bool)
}

// Loader produces the session collection.
type Loader interface {
	Load(ctx context.Context) (models.Collection, error)
}
