// Package targets provides render targets for the router.
package targets

import (
	"fmt"
	"io"
	"sync"
)

// Buffer keeps the last markup written to it.
type Buffer struct {
	mu      sync.Mutex
	content string
	writes  int
}

// SetContent replaces the buffered markup.
func (b *Buffer) SetContent(markup string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = markup
	b.writes++
}

// Content returns the buffered markup.
func (b *Buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// Writes returns how many times SetContent was called.
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Writer writes every update as a labelled section, e.g.
//
//	<!-- blog-featured -->
//	...markup...
type Writer struct {
	name string
	mu   *sync.Mutex
	w    io.Writer
	err  error
}

// NewWriter creates a Writer labelled name. Writers sharing mu may share w.
func NewWriter(name string, w io.Writer, mu *sync.Mutex) *Writer {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Writer{name: name, w: w, mu: mu}
}

// SetContent writes the section. The first write error is kept and later
// updates are dropped.
func (t *Writer) SetContent(markup string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "<!-- %s -->\n%s\n", t.name, markup)
}

// Err returns the first write error.
func (t *Writer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
