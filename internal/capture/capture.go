// Package capture collects the diagnostic text a lookup engine emits on an
// unstructured side channel (conventionally standard error) while a single
// operation runs, so it can be attached to the error returned for it.
package capture

import (
	"io"
	"sync"
)

// MaxDiagnostic bounds the diagnostic text kept for one capture. Anything
// beyond it is read and discarded so the writer never blocks.
const MaxDiagnostic = 4096

// Redirector swaps a diagnostic channel to w until restore is called.
type Redirector interface {
	Redirect(w io.Writer) (restore func(), err error)
}

// mu makes capture a process-wide exclusive resource: redirections manipulate
// shared slots (a writer variable or a file descriptor number).
var mu sync.Mutex

// Run executes fn with r redirected into a bounded buffer and returns what was
// written. The channel is restored before Run returns, even if fn panics. If
// the redirection cannot be set up fn still runs and the result is empty.
func Run(r Redirector, fn func()) string {
	mu.Lock()
	defer mu.Unlock()

	buf := &boundedBuffer{max: MaxDiagnostic}
	restore, err := r.Redirect(buf)
	if err != nil {
		fn()
		return ""
	}
	func() {
		defer restore()
		fn()
	}()
	return buf.String()
}

// boundedBuffer keeps the first max bytes written to it and reports every
// write as fully consumed.
type boundedBuffer struct {
	mu  sync.Mutex
	max int
	b   []byte
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := b.max - len(b.b); room > 0 {
		if len(p) < room {
			room = len(p)
		}
		b.b = append(b.b, p[:room]...)
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.b)
}
