package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"blogview/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestImportMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-second.md", `---
title: Second Post
date: 2024-06-01
category: News
excerpt: The newer one.
image: /img/second.png
---

# Second

Body text.
`)
	writeFile(t, dir, "a-first.md", `---
title: "Hello, World!"
slug: hello
date: 2024-01-01
---
First body.
`)
	writeFile(t, dir, "untitled.md", "No front matter here.\n")
	writeFile(t, dir, "notes.txt", "ignored")

	doc, err := ImportMarkdown(dir)
	require.NoError(t, err)

	store := NewPostStore(mock.NewSource(string(doc)))
	c, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	posts := c.Posts()
	assert.Equal(t, "Hello, World!", posts[0].Title)
	assert.Equal(t, "hello", posts[0].Slug)
	assert.Equal(t, "First body.", posts[0].Body)

	assert.Equal(t, "Second Post", posts[1].Title)
	assert.Equal(t, "News", posts[1].Category)
	assert.Equal(t, "The newer one.", posts[1].Excerpt)
	assert.Equal(t, "/img/second.png", posts[1].Image)
	assert.Equal(t, "# Second\n\nBody text.", posts[1].Body)
	_, ok := posts[1].Date.Time()
	assert.True(t, ok)

	assert.Equal(t, "untitled", posts[2].Title)
	assert.Equal(t, "No front matter here.", posts[2].Body)
	assert.True(t, posts[2].Date.IsZero())

	sorted := store.SortedDescending(c)
	assert.Equal(t, "Second Post", sorted[0].Title)
}

func TestImportMarkdownErrors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		_, err := ImportMarkdown(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("no markdown files", func(t *testing.T) {
		_, err := ImportMarkdown(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("bad front matter", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bad.md", "---\ntitle: [unclosed\n---\nbody\n")
		_, err := ImportMarkdown(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse front matter")
	})
}
