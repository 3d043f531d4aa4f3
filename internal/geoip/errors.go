package geoip

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument is returned for an edition name other than city,
	// country or region.
	ErrInvalidArgument = errors.New("geoip: invalid argument")

	// ErrOpen is matched by every *OpenError.
	ErrOpen = errors.New("geoip: open failed")

	// ErrUnsupportedEdition is returned by lookups against a database type
	// without a field table.
	ErrUnsupportedEdition = errors.New("geoip: unsupported database edition")

	// ErrClosed is returned by lookups on a closed Handle.
	ErrClosed = errors.New("geoip: handle is closed")
)

// OpenError reports a database that could not be opened. Diagnostic holds
// whatever the engine printed while trying, possibly nothing.
type OpenError struct {
	Target     string
	Diagnostic string
}

func (e *OpenError) Error() string {
	msg := "geoip: failed to open " + e.Target
	if d := strings.TrimSpace(e.Diagnostic); d != "" {
		msg += ": " + d
	}
	return msg
}

func (e *OpenError) Unwrap() error { return ErrOpen }
