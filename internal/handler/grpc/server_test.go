package grpc

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/TomasB/geoip/internal/data"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

type panicLocator struct{ mockLocator }

func (p *panicLocator) Locate(string) (*data.Location, error) {
	panic("boom")
}

func startServer(t *testing.T, locator data.Locator, logs *bytes.Buffer) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	srv := NewServer(NewHandler(locator), logger)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestServerLookup(t *testing.T) {
	var logs bytes.Buffer
	client := startServer(t, &mockLocator{loc: usLocation()}, &logs)

	resp, err := client.Lookup(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resp.GetFields()["edition"].GetStringValue(); got != "country" {
		t.Errorf("expected edition country, got %q", got)
	}
	if !strings.Contains(logs.String(), LookupFullMethod) {
		t.Errorf("expected call to be logged, got %q", logs.String())
	}
}

func TestServerRecoversPanic(t *testing.T) {
	var logs bytes.Buffer
	client := startServer(t, &panicLocator{}, &logs)

	_, err := client.Lookup(context.Background(), "1.2.3.4")
	assertCode(t, err, codes.Internal)
	if !strings.Contains(logs.String(), "caught panic in request") {
		t.Errorf("expected panic to be logged, got %q", logs.String())
	}
}

func TestServerRejectsBadRequest(t *testing.T) {
	var logs bytes.Buffer
	client := startServer(t, &mockLocator{loc: usLocation()}, &logs)

	// Bypass Client to send a request without a name.
	out := new(structpb.Struct)
	err := client.cc.Invoke(context.Background(), LookupFullMethod, &structpb.Struct{}, out)
	assertCode(t, err, codes.InvalidArgument)
}

func TestServerReflection(t *testing.T) {
	var logs bytes.Buffer
	client := startServer(t, &mockLocator{loc: usLocation()}, &logs)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := reflectionpb.NewServerReflectionClient(client.cc).ServerReflectionInfo(ctx)
	if err != nil {
		t.Fatalf("failed to open reflection stream: %v", err)
	}
	defer stream.CloseSend()

	err = stream.Send(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{
			FileContainingSymbol: "geoip.v1.GeoIPService",
		},
	})
	if err != nil {
		t.Fatalf("failed to send reflection request: %v", err)
	}
	resp, err := stream.Recv()
	if err != nil {
		t.Fatalf("failed to receive reflection response: %v", err)
	}
	if e := resp.GetErrorResponse(); e != nil {
		t.Fatalf("reflection error: %s", e.GetErrorMessage())
	}
	files := resp.GetFileDescriptorResponse().GetFileDescriptorProto()
	if len(files) == 0 {
		t.Fatal("expected a file descriptor for the service")
	}

	var fd descriptorpb.FileDescriptorProto
	if err := proto.Unmarshal(files[0], &fd); err != nil {
		t.Fatalf("failed to decode file descriptor: %v", err)
	}
	if fd.GetName() != ServiceDesc.Metadata {
		t.Errorf("expected %s, got %s", ServiceDesc.Metadata, fd.GetName())
	}
	if got := fd.GetService()[0].GetMethod()[0].GetName(); got != "Lookup" {
		t.Errorf("expected Lookup method, got %s", got)
	}
}
