//go:build !unix

package capture

import (
	"errors"
	"io"
)

// FD redirects an OS file descriptor. Only unix platforms support it.
type FD int

// Stderr is the standard error descriptor.
const Stderr FD = 2

var errUnsupported = errors.New("fd redirection is not supported on this platform")

// Redirect always fails; Run then executes the operation uncaptured.
func (fd FD) Redirect(io.Writer) (func(), error) {
	return nil, errUnsupported
}
