package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcrecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

const (
	maxConnectionAge      = 5 * time.Minute
	maxConnectionAgeGrace = 30 * time.Second
)

// NewServer returns a gRPC server with GeoIPService and reflection registered.
func NewServer(h *Handler, logger *slog.Logger) *grpc.Server {
	server := grpc.NewServer(
		grpc.UnaryInterceptor(newUnaryInterceptor(logger)),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionAge:      maxConnectionAge,
			MaxConnectionAgeGrace: maxConnectionAgeGrace,
		}),
	)
	RegisterGeoIPServiceServer(server, h)
	reflection.Register(server)
	return server
}

func newUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return grpcmiddleware.ChainUnaryServer(
		grpcrecovery.UnaryServerInterceptor(
			grpcrecovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
				logger.ErrorContext(ctx, "caught panic in request",
					"panic", fmt.Sprint(p),
					"stacktrace", string(debug.Stack()),
				)
				return status.Error(codes.Internal, "internal server error")
			}),
		),
		loggingInterceptor(logger),
	)
}

// loggingInterceptor logs every call the way the HTTP middleware does.
func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch code {
		case codes.OK:
			logger.InfoContext(ctx, "rpc completed", attrs...)
		case codes.Internal, codes.Unknown, codes.Unavailable:
			logger.ErrorContext(ctx, "rpc completed", append(attrs, "error", err)...)
		default:
			logger.WarnContext(ctx, "rpc completed", attrs...)
		}
		return resp, err
	}
}
