package navigation

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Lines is a navigator fed by a line-oriented reader: every line becomes the
// new fragment. Reading starts with the first Watch and the navigator closes
// at end of input.
type Lines struct {
	*Memory
	r      io.Reader
	logger *zap.Logger
	once   sync.Once
}

// NewLines creates a Lines navigator over r.
func NewLines(r io.Reader, logger *zap.Logger) *Lines {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lines{Memory: NewMemory(""), r: r, logger: logger}
}

// Watch subscribes to fragment changes and starts reading input.
func (l *Lines) Watch(ctx context.Context) <-chan string {
	ch := l.Memory.Watch(ctx)
	l.once.Do(func() {
		go l.read()
	})
	return ch
}

func (l *Lines) read() {
	defer l.Memory.Close()

	scanner := bufio.NewScanner(l.r)
	for scanner.Scan() {
		l.SetFragment(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		l.logger.Warn("navigation input failed", zap.Error(err))
	}
}
