package grpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/TomasB/geoip/internal/data"
	"github.com/TomasB/geoip/internal/geoip"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type mockLocator struct {
	loc *data.Location
	err error
}

func (m *mockLocator) Locate(_ string) (*data.Location, error) {
	return m.loc, m.err
}

func (m *mockLocator) Describe() string {
	return "GeoIP Country Edition"
}

func (m *mockLocator) Close() error {
	return nil
}

func usLocation() *data.Location {
	return &data.Location{
		Name:    "1.2.3.4",
		Edition: "country",
		Summary: "United States (US)",
		Fields: []data.Field{
			{Name: "country", Value: "United States"},
			{Name: "country_code", Value: "US"},
			{Name: "continent", Value: "NA"},
		},
	}
}

func request(t *testing.T, name string) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(map[string]any{"name": name})
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	return req
}

func TestLookupFound(t *testing.T) {
	h := NewHandler(&mockLocator{loc: usLocation()})

	resp, err := h.Lookup(context.Background(), request(t, "1.2.3.4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := resp.AsMap()
	if m["summary"] != "United States (US)" {
		t.Errorf("unexpected summary %v", m["summary"])
	}
	fields, ok := m["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected fields object, got %T", m["fields"])
	}
	if fields["country_code"] != "US" {
		t.Errorf("expected country_code US, got %v", fields["country_code"])
	}
}

func TestLookupMissingName(t *testing.T) {
	h := NewHandler(&mockLocator{loc: usLocation()})

	_, err := h.Lookup(context.Background(), &structpb.Struct{})
	assertCode(t, err, codes.InvalidArgument)
}

func TestLookupNilRequest(t *testing.T) {
	h := NewHandler(&mockLocator{loc: usLocation()})

	_, err := h.Lookup(context.Background(), nil)
	assertCode(t, err, codes.InvalidArgument)
}

func TestLookupNotFound(t *testing.T) {
	h := NewHandler(&mockLocator{err: data.ErrNotFound})

	_, err := h.Lookup(context.Background(), request(t, "10.0.0.1"))
	assertCode(t, err, codes.NotFound)
}

func TestLookupClosed(t *testing.T) {
	h := NewHandler(&mockLocator{err: fmt.Errorf("lookup failed: %w", geoip.ErrClosed)})

	_, err := h.Lookup(context.Background(), request(t, "1.2.3.4"))
	assertCode(t, err, codes.Unavailable)
}

func TestLookupError(t *testing.T) {
	h := NewHandler(&mockLocator{err: fmt.Errorf("db failure")})

	_, err := h.Lookup(context.Background(), request(t, "1.2.3.4"))
	assertCode(t, err, codes.Internal)
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v", want)
	}
	if status.Code(err) != want {
		t.Fatalf("expected code %v, got %v", want, status.Code(err))
	}
}
