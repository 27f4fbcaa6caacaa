package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "efiling.v1.FilingService"

	SubmitMethod        = "/efiling.v1.FilingService/Submit"
	GetSubmissionMethod = "/efiling.v1.FilingService/GetSubmission"

	// CodecName is the content subtype the messages of this package travel
	// under (application/grpc+efiling).
	CodecName = "efiling"
)

func init() {
	encoding.RegisterCodec(Codec{})
}

type marshaler interface {
	Marshal() ([]byte, error)
}

type unmarshaler interface {
	Unmarshal([]byte) error
}

// Codec moves the messages of this package over gRPC.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(marshaler)
	if !ok {
		return nil, fmt.Errorf("efiling codec: cannot marshal %T", v)
	}
	return m.Marshal()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(unmarshaler)
	if !ok {
		return fmt.Errorf("efiling codec: cannot unmarshal into %T", v)
	}
	return m.Unmarshal(data)
}

func (Codec) Name() string { return CodecName }

// FilingServiceServer is implemented by the gateway.
type FilingServiceServer interface {
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
	GetSubmission(context.Context, *GetSubmissionRequest) (*SubmissionStatus, error)
}

// UnimplementedFilingServiceServer answers every method with Unimplemented.
type UnimplementedFilingServiceServer struct{}

func (UnimplementedFilingServiceServer) Submit(context.Context, *SubmitRequest) (*SubmitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Submit not implemented")
}

func (UnimplementedFilingServiceServer) GetSubmission(context.Context, *GetSubmissionRequest) (*SubmissionStatus, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSubmission not implemented")
}

func submitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FilingServiceServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SubmitMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FilingServiceServer).Submit(ctx, req.(*SubmitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getSubmissionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetSubmissionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FilingServiceServer).GetSubmission(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetSubmissionMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FilingServiceServer).GetSubmission(ctx, req.(*GetSubmissionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// FilingServiceDesc describes the service to grpc.Server.
var FilingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FilingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: submitHandler},
		{MethodName: "GetSubmission", Handler: getSubmissionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "efiling/v1/filing.proto",
}

func RegisterFilingServiceServer(s grpc.ServiceRegistrar, srv FilingServiceServer) {
	s.RegisterService(&FilingServiceDesc, srv)
}

// FilingServiceClient calls the gateway.
type FilingServiceClient interface {
	Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error)
	GetSubmission(ctx context.Context, in *GetSubmissionRequest, opts ...grpc.CallOption) (*SubmissionStatus, error)
}

type filingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFilingServiceClient(cc grpc.ClientConnInterface) FilingServiceClient {
	return &filingServiceClient{cc: cc}
}

func (c *filingServiceClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error) {
	out := new(SubmitResponse)
	if err := c.cc.Invoke(ctx, SubmitMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *filingServiceClient) GetSubmission(ctx context.Context, in *GetSubmissionRequest, opts ...grpc.CallOption) (*SubmissionStatus, error) {
	out := new(SubmissionStatus)
	if err := c.cc.Invoke(ctx, GetSubmissionMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
