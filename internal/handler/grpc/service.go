package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// LookupFullMethod is the full gRPC method name of GeoIPService.Lookup.
const LookupFullMethod = "/geoip.v1.GeoIPService/Lookup"

// GeoIPServiceServer is the server API for the geoip.v1.GeoIPService service.
// Messages are google.protobuf.Struct values: the request carries "name", the
// response "name", "edition", "summary" and "fields".
type GeoIPServiceServer interface {
	Lookup(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc is the grpc.ServiceDesc for geoip.v1.GeoIPService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "geoip.v1.GeoIPService",
	HandlerType: (*GeoIPServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Lookup",
			Handler:    lookupHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceFile.GetName(),
}

// RegisterGeoIPServiceServer registers srv on s.
func RegisterGeoIPServiceServer(s grpc.ServiceRegistrar, srv GeoIPServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func lookupHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GeoIPServiceServer).Lookup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LookupFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GeoIPServiceServer).Lookup(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls geoip.v1.GeoIPService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Lookup calls GeoIPService.Lookup for name.
func (c *Client) Lookup(ctx context.Context, name string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LookupFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
