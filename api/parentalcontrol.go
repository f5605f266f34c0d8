package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Request field names of ParentalControlService/CanWatch.
const (
	FieldCustomerLevel = "customerLevel"
	FieldMovieID       = "movieId"
)

const ParentalControlService_CanWatch_FullMethodName = "/parentalcontrol.ParentalControlService/CanWatch"

// NewCanWatchRequest builds a CanWatch request message.
func NewCanWatchRequest(customerLevel string, movieID string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldCustomerLevel: structpb.NewStringValue(customerLevel),
		FieldMovieID:       structpb.NewStringValue(movieID),
	}}
}

// ParentalControlServiceClient is the client API for ParentalControlService.
type ParentalControlServiceClient interface {
	CanWatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type parentalControlServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewParentalControlServiceClient(cc grpc.ClientConnInterface) ParentalControlServiceClient {
	return &parentalControlServiceClient{cc}
}

func (c *parentalControlServiceClient) CanWatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, ParentalControlService_CanWatch_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ParentalControlServiceServer is the server API for ParentalControlService.
type ParentalControlServiceServer interface {
	CanWatch(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
}

func RegisterParentalControlServiceServer(s grpc.ServiceRegistrar, srv ParentalControlServiceServer) {
	s.RegisterService(&ParentalControlService_ServiceDesc, srv)
}

func _ParentalControlService_CanWatch_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParentalControlServiceServer).CanWatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ParentalControlService_CanWatch_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ParentalControlServiceServer).CanWatch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ParentalControlService_ServiceDesc is the grpc.ServiceDesc for ParentalControlService.
var ParentalControlService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "parentalcontrol.ParentalControlService",
	HandlerType: (*ParentalControlServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CanWatch",
			Handler:    _ParentalControlService_CanWatch_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "parentalcontrol.proto",
}
