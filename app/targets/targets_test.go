package targets

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer(t *testing.T) {
	var b Buffer
	assert.Equal(t, "", b.Content())
	assert.Equal(t, 0, b.Writes())

	b.SetContent("<p>one</p>")
	b.SetContent("")
	assert.Equal(t, "", b.Content())
	assert.Equal(t, 2, b.Writes())
}

type errWriter struct{ calls int }

func (w *errWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, errors.New("closed")
}

func TestWriter(t *testing.T) {
	t.Run("labelled sections", func(t *testing.T) {
		var out bytes.Buffer
		var mu sync.Mutex
		featured := NewWriter("blog-featured", &out, &mu)
		grid := NewWriter("blog-grid", &out, &mu)

		featured.SetContent("<h3>A</h3>")
		grid.SetContent("")

		assert.Equal(t, "<!-- blog-featured -->\n<h3>A</h3>\n<!-- blog-grid -->\n\n", out.String())
		assert.NoError(t, featured.Err())
	})

	t.Run("keeps first error", func(t *testing.T) {
		w := &errWriter{}
		target := NewWriter("blog-grid", w, nil)
		target.SetContent("a")
		target.SetContent("b")

		assert.EqualError(t, target.Err(), "closed")
		assert.Equal(t, 1, w.calls)
	})
}
