package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"blogview/app/models"
	"blogview/app/repositories"

	"go.uber.org/zap"
)

// ErrLoadFailed marks every error returned by PostStore.Load.
var ErrLoadFailed = errors.New("could not load posts")

// MissingDatePolicy decides where posts without a usable date sort.
type MissingDatePolicy string

const (
	// MissingDatesLast sorts undated posts after every dated post.
	MissingDatesLast MissingDatePolicy = "last"
	// MissingDatesNow sorts undated posts as if dated at the current instant.
	MissingDatesNow MissingDatePolicy = "now"
)

// PostStore loads the posts document and answers list and lookup queries
// against the resulting collection.
type PostStore struct {
	source repositories.Source
	policy MissingDatePolicy
	logger *zap.Logger
	now    func() time.Time
}

// StoreOption configures a PostStore.
type StoreOption func(*PostStore)

// WithMissingDatePolicy sets the missing-date sort policy.
func WithMissingDatePolicy(p MissingDatePolicy) StoreOption {
	return func(s *PostStore) {
		if p == MissingDatesNow || p == MissingDatesLast {
			s.policy = p
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *PostStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used by MissingDatesNow.
func WithClock(now func() time.Time) StoreOption {
	return func(s *PostStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPostStore creates a new PostStore
func NewPostStore(source repositories.Source, opts ...StoreOption) *PostStore {
	s := &PostStore{
		source: source,
		policy: MissingDatesLast,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the document once and builds the session collection.
//
// A fetch failure, invalid JSON or a top-level null returns a failed
// collection and an error wrapping ErrLoadFailed. Any other top-level value
// that is not an object, or an object without a posts array, yields an empty
// collection that did not fail.
func (s *PostStore) Load(ctx context.Context) (models.Collection, error) {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return models.FailedCollection(), fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	posts, err := s.decode(data)
	if err != nil {
		return models.FailedCollection(), fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	s.logger.Info("posts loaded", zap.Int("count", len(posts)))
	return models.NewCollection(posts), nil
}

func (s *PostStore) decode(data []byte) ([]models.Post, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, errors.New("document is not valid JSON")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("document is null")
	}
	if trimmed[0] != '{' {
		s.logger.Warn("document is not a JSON object; treating as empty")
		return nil, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var elements []json.RawMessage
	raw := bytes.TrimSpace(top["posts"])
	if len(raw) == 0 || raw[0] != '[' {
		s.logger.Warn("document has no posts array; treating as empty")
		return nil, nil
	}
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("failed to parse posts: %w", err)
	}

	posts := make([]models.Post, 0, len(elements))
	for i, el := range elements {
		var p models.Post
		if err := json.Unmarshal(el, &p); err != nil {
			s.logger.Warn("skipping post", zap.Int("index", i), zap.Error(err))
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// SortedDescending returns a new slice ordered most recent first. Ties keep
// document order.
func (s *PostStore) SortedDescending(c models.Collection) []models.Post {
	posts := c.Posts()
	now := s.now()

	key := func(p models.Post) (time.Time, bool) {
		t, ok := p.Date.Time()
		if !ok && s.policy == MissingDatesNow {
			return now, true
		}
		return t, ok
	}

	sort.SliceStable(posts, func(i, j int) bool {
		ti, oki := key(posts[i])
		tj, okj := key(posts[j])
		switch {
		case oki && okj:
			return ti.After(tj)
		case oki != okj:
			return oki
		default:
			return false
		}
	})
	return posts
}

// FindBySlug returns the first post, in document order, whose normalized
// slug equals key. Not finding one is not an error.
func (s *PostStore) FindBySlug(c models.Collection, key string) (models.Post, bool) {
	var found models.Post
	var ok bool
	c.Each(func(p models.Post) bool {
		if p.Key() == key {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}
