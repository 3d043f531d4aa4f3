//go:build unix

package capture

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// FD redirects an OS file descriptor. It is meant for engines implemented in
// C that print to the process's standard error.
type FD int

// Stderr is the standard error descriptor.
const Stderr FD = 2

// Redirect points the descriptor at a pipe drained into w by a goroutine, so
// the engine cannot block on a full pipe however much it writes.
func (fd FD) Redirect(w io.Writer) (func(), error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	saved, err := unix.Dup(int(fd))
	if err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("failed to duplicate fd %d: %w", int(fd), err)
	}
	if err := unix.Dup2(int(pw.Fd()), int(fd)); err != nil {
		unix.Close(saved)
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("failed to redirect fd %d: %w", int(fd), err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = io.Copy(w, pr)
	}()

	return func() {
		_ = unix.Dup2(saved, int(fd))
		_ = unix.Close(saved)
		// the descriptor no longer references the pipe; closing our end
		// delivers EOF to the reader.
		pw.Close()
		<-done
		pr.Close()
	}, nil
}
