// Package navigation provides fragment sources for the router.
package navigation

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process navigator. Every watcher gets its own unbounded
// queue, so SetFragment never blocks, even when called by a watcher.
type Memory struct {
	mu       sync.Mutex
	fragment string
	subs     map[*subscriber]struct{}
	closed   bool
}

// NewMemory creates a Memory navigator positioned at fragment.
func NewMemory(fragment string) *Memory {
	return &Memory{
		fragment: trimHash(fragment),
		subs:     make(map[*subscriber]struct{}),
	}
}

// Fragment returns the current fragment without its leading '#'.
func (m *Memory) Fragment() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fragment
}

// SetFragment updates the fragment. Watchers are notified only when the value
// changes. Calls after Close are ignored.
func (m *Memory) SetFragment(fragment string) {
	fragment = trimHash(fragment)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || fragment == m.fragment {
		return
	}
	m.fragment = fragment
	for s := range m.subs {
		s.push(fragment)
	}
}

// Watch returns a channel of fragment changes. It closes once ctx is done, or
// after Close once every queued change has been delivered.
func (m *Memory) Watch(ctx context.Context) <-chan string {
	s := &subscriber{
		notify: make(chan struct{}, 1),
		out:    make(chan string),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		close(s.out)
		return s.out
	}
	m.subs[s] = struct{}{}
	m.mu.Unlock()

	go func() {
		defer m.remove(s)
		s.run(ctx)
	}()
	return s.out
}

// Close ends every watch after its pending changes are delivered.
func (m *Memory) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for s := range m.subs {
		s.finish()
	}
}

func (m *Memory) remove(s *subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, s)
}

type subscriber struct {
	mu     sync.Mutex
	queue  []string
	done   bool
	notify chan struct{}
	out    chan string
}

func (s *subscriber) push(fragment string) {
	s.mu.Lock()
	s.queue = append(s.queue, fragment)
	s.mu.Unlock()
	s.wake()
}

func (s *subscriber) finish() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	s.wake()
}

func (s *subscriber) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscriber) run(ctx context.Context) {
	defer close(s.out)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			done := s.done
			s.mu.Unlock()
			if done {
				return
			}
			select {
			case <-s.notify:
				continue
			case <-ctx.Done():
				return
			}
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
		case <-ctx.Done():
			return
		}
	}
}

func trimHash(fragment string) string {
	return strings.TrimPrefix(fragment, "#")
}
