package capture

import (
	"io"
	"sync"
)

// WriterSlot is an io.Writer whose destination can be redirected. Engines
// implemented in Go write their diagnostics to a WriterSlot instead of
// os.Stderr directly.
type WriterSlot struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSlot returns a slot writing to w. A nil w discards output.
func NewWriterSlot(w io.Writer) *WriterSlot {
	return &WriterSlot{w: w}
}

func (s *WriterSlot) Write(p []byte) (int, error) {
	s.mu.Lock()
	w := s.w
	s.mu.Unlock()
	if w == nil {
		return len(p), nil
	}
	return w.Write(p)
}

// Redirect points the slot at w until restore is called.
func (s *WriterSlot) Redirect(w io.Writer) (func(), error) {
	s.mu.Lock()
	prev := s.w
	s.w = w
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.w = prev
			s.mu.Unlock()
		})
	}, nil
}
