package data

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/TomasB/geoip/internal/engine"
	"github.com/TomasB/geoip/internal/geoip"
	"github.com/TomasB/geoip/internal/metrics"
)

const defaultResolveTimeout = 5 * time.Second

// Opener opens the database a Source serves.
type Opener func() (*geoip.Handle, error)

// Source implements Locator on top of a geoip.Handle. Handles are not safe
// for concurrent use, so every call touching one holds mu. Host names are
// resolved before mu is taken.
type Source struct {
	resolver       engine.Resolver
	resolveTimeout time.Duration

	mu     sync.Mutex
	open   Opener
	h      *geoip.Handle
	closed bool
}

var _ Locator = (*Source)(nil)

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithResolver sets the resolver used for names that are not IP literals.
func WithResolver(r engine.Resolver) SourceOption {
	return func(s *Source) { s.resolver = r }
}

// WithResolveTimeout bounds a single host name resolution.
func WithResolveTimeout(d time.Duration) SourceOption {
	return func(s *Source) { s.resolveTimeout = d }
}

// NewSource opens the database and returns a Source serving it.
func NewSource(open Opener, opts ...SourceOption) (*Source, error) {
	h, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Source{
		resolver:       net.DefaultResolver,
		resolveTimeout: defaultResolveTimeout,
		open:           open,
		h:              h,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Locate looks up name and copies the result.
func (s *Source) Locate(name string) (*Location, error) {
	start := time.Now()
	loc, err := s.locate(name)

	outcome := "found"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.ObserveLookup(outcome, time.Since(start))
	return loc, err
}

func (s *Source) locate(name string) (*Location, error) {
	addr, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.h == nil {
		return nil, geoip.ErrClosed
	}
	r, err := s.h.Lookup(addr)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	defer r.Close()

	loc := &Location{
		Name:    name,
		Edition: r.Edition().String(),
		Summary: r.String(),
	}
	for field, v := range r.All() {
		loc.Fields = append(loc.Fields, Field{Name: field, Value: v})
	}
	return loc, nil
}

// resolve returns name itself when it is an IP literal, otherwise its address.
func (s *Source) resolve(name string) (string, error) {
	if name == "" || net.ParseIP(name) != nil {
		return name, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.resolveTimeout)
	defer cancel()
	ip := engine.ResolveIP(ctx, s.resolver, name)
	if ip == nil {
		return "", ErrNotFound
	}
	return ip.String(), nil
}

// Describe returns the description of the loaded database.
func (s *Source) Describe() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.h == nil {
		return ""
	}
	return s.h.Describe()
}

// Ready reports whether a database is loaded.
func (s *Source) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.h == nil {
		return geoip.ErrClosed
	}
	return nil
}

// Reload opens the database again and swaps it in. On failure the current
// database stays in service. A closed Source stays closed.
func (s *Source) Reload() error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return geoip.ErrClosed
	}

	h, err := s.open()
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		h.Close()
		return geoip.ErrClosed
	}
	old := s.h
	s.h = h
	s.mu.Unlock()
	metrics.ReloadsTotal.WithLabelValues("ok").Inc()

	if old != nil {
		old.Close()
	}
	return nil
}

// Close releases the database.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.h == nil {
		return nil
	}
	err := s.h.Close()
	s.h = nil
	return err
}
