// Package api defines the gRPC services of the parental control platform.
//
// Services are described by hand and use protobuf well-known types for their
// messages, so no protoc step is needed to build clients or servers.
package api
