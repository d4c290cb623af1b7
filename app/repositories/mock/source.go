package mock

import (
	"context"
	"sync"
)

// Source is a repositories.Source returning a fixed document or error.
type Source struct {
	Doc []byte
	Err error

	mutex sync.Mutex
	calls int
}

// NewSource returns a Source serving doc.
func NewSource(doc string) *Source {
	return &Source{Doc: []byte(doc)}
}

// NewFailingSource returns a Source that always fails with err.
func NewFailingSource(err error) *Source {
	return &Source{Err: err}
}

func (m *Source) Fetch(ctx context.Context) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Doc, nil
}

// Calls returns how many times Fetch ran.
func (m *Source) Calls() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.calls
}
