package geoip

import (
	"runtime"
	"testing"
	"time"
)

// collect runs the garbage collector until done reports true or the deadline
// passes.
func collect(t *testing.T, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !done() {
		if time.Now().After(deadline) {
			t.Fatal("resources were not released after garbage collection")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCleanup_ReleasesUnreachable(t *testing.T) {
	e := newFakeEngine()
	db := e.Files[cityPath]

	func() {
		h, err := Open(cityPath, WithEngine(e))
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}
		r, err := h.Lookup("216.160.83.56")
		if err != nil || r == nil {
			t.Fatalf("expected a result, got %v, %v", r, err)
		}
	}()

	collect(t, func() bool {
		return db.Closes.Load() >= 1 && e.RecordReleases.Load() >= 1
	})

	if got := db.Closes.Load(); got != 1 {
		t.Errorf("expected one close, got %d", got)
	}
	if got := e.RecordReleases.Load(); got != 1 {
		t.Errorf("expected one record release, got %d", got)
	}
}

func TestCleanup_StoppedByClose(t *testing.T) {
	e := newFakeEngine()
	db := e.Files[regionPath]

	func() {
		h, err := Open(regionPath, WithEngine(e))
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}
		r, err := h.Lookup("216.160.83.56")
		if err != nil || r == nil {
			t.Fatalf("expected a result, got %v, %v", r, err)
		}
		r.Close()
		h.Close()
	}()

	for range 5 {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}

	if got := db.Closes.Load(); got != 1 {
		t.Errorf("expected exactly one close, got %d", got)
	}
	if got := e.RegionReleases.Load(); got != 1 {
		t.Errorf("expected exactly one region release, got %d", got)
	}
}
