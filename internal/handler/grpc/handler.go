package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TomasB/geoip/internal/data"
	"github.com/TomasB/geoip/internal/geoip"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Handler implements the gRPC GeoIPService.
type Handler struct {
	locator data.Locator
}

var _ GeoIPServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC handler with the given Locator.
func NewHandler(locator data.Locator) *Handler {
	return &Handler{locator: locator}
}

// Lookup resolves the "name" member of req to a location.
func (h *Handler) Lookup(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	name := req.GetFields()["name"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	loc, err := h.locator.Locate(name)
	switch {
	case errors.Is(err, data.ErrNotFound):
		return nil, status.Errorf(codes.NotFound, "no location for %s", name)
	case errors.Is(err, geoip.ErrClosed):
		return nil, status.Error(codes.Unavailable, "database unavailable")
	case err != nil:
		slog.Error("lookup failed", "name", name, "error", err)
		return nil, status.Error(codes.Internal, "lookup failed")
	}

	resp, err := structpb.NewStruct(map[string]any{
		"name":    loc.Name,
		"edition": loc.Edition,
		"summary": loc.Summary,
		"fields":  loc.Map(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}
