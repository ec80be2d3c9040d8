package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CredentialsServiceName is the fully qualified name of the internal credentials service.
const CredentialsServiceName = "superapp.gateway.v1.Credentials"

// Full method names, as seen by interceptors.
const (
	IntrospectMethod  = "/" + CredentialsServiceName + "/Introspect"
	QuotaMethod       = "/" + CredentialsServiceName + "/Quota"
	ReportUsageMethod = "/" + CredentialsServiceName + "/ReportUsage"
)

// CredentialsServer is the server API of the credentials service. Messages are
// well-known protobuf types so sibling services need no generated stubs.
type CredentialsServer interface {
	Introspect(ctx context.Context, token *wrapperspb.StringValue) (*structpb.Struct, error)
	Quota(ctx context.Context, service *wrapperspb.StringValue) (*structpb.Struct, error)
	ReportUsage(ctx context.Context, usage *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCredentialsServer registers srv on s.
func RegisterCredentialsServer(s grpc.ServiceRegistrar, srv CredentialsServer) {
	s.RegisterService(&credentialsServiceDesc, srv)
}

var credentialsServiceDesc = grpc.ServiceDesc{
	ServiceName: CredentialsServiceName,
	HandlerType: (*CredentialsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Introspect", Handler: introspectHandler},
		{MethodName: "Quota", Handler: quotaHandler},
		{MethodName: "ReportUsage", Handler: reportUsageHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "superapp/gateway/v1/credentials.proto",
}

func introspectHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CredentialsServer).Introspect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IntrospectMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CredentialsServer).Introspect(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func quotaHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CredentialsServer).Quota(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: QuotaMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CredentialsServer).Quota(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func reportUsageHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CredentialsServer).ReportUsage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReportUsageMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CredentialsServer).ReportUsage(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CredentialsClient calls the credentials service.
type CredentialsClient struct {
	cc grpc.ClientConnInterface
}

func NewCredentialsClient(cc grpc.ClientConnInterface) *CredentialsClient {
	return &CredentialsClient{cc: cc}
}

func (c *CredentialsClient) Introspect(ctx context.Context, token string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntrospectMethod, wrapperspb.String(token), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CredentialsClient) Quota(ctx context.Context, service string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, QuotaMethod, wrapperspb.String(service), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CredentialsClient) ReportUsage(ctx context.Context, usage *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ReportUsageMethod, usage, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
