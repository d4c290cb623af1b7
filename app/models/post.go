package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"blogview/app/slug"
)

// ErrNotObject is returned when a posts element is not a JSON object.
var ErrNotObject = errors.New("post is not a JSON object")

// Key returns the normalized slug used in links and lookups: the explicit
// slug when present, the title otherwise.
func (p Post) Key() string {
	if p.Slug != "" {
		return slug.Normalize(p.Slug)
	}
	return slug.Normalize(p.Title)
}

// UnmarshalJSON decodes a post leniently. Text fields accept strings,
// numbers and booleans; null and missing fields become empty.
func (p *Post) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("failed to decode post: %w", err)
	}

	*p = Post{
		Title:    text(fields["title"]),
		Slug:     text(fields["slug"]),
		Category: text(fields["category"]),
		Excerpt:  text(fields["excerpt"]),
		Image:    text(fields["image"]),
		Body:     text(fields["body"]),
	}
	if raw, ok := fields["date"]; ok {
		if err := p.Date.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	return nil
}

// text coerces a scalar JSON value to its display string.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		return ""
	default:
		return string(raw)
	}
}
