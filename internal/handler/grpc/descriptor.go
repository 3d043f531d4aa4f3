package grpc

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// serviceFile describes geoip/v1/geoip.proto:
//
//	syntax = "proto3";
//	package geoip.v1;
//	import "google/protobuf/struct.proto";
//	service GeoIPService {
//	  rpc Lookup(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
var serviceFile = &descriptorpb.FileDescriptorProto{
	Name:       proto.String("geoip/v1/geoip.proto"),
	Package:    proto.String("geoip.v1"),
	Dependency: []string{"google/protobuf/struct.proto"},
	Syntax:     proto.String("proto3"),
	Service: []*descriptorpb.ServiceDescriptorProto{{
		Name: proto.String("GeoIPService"),
		Method: []*descriptorpb.MethodDescriptorProto{{
			Name:       proto.String("Lookup"),
			InputType:  proto.String(".google.protobuf.Struct"),
			OutputType: proto.String(".google.protobuf.Struct"),
		}},
	}},
}

// init registers serviceFile so server reflection can describe the service.
func init() {
	fd, err := protodesc.NewFile(serviceFile, protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(err)
	}
}
