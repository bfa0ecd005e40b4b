package grpc

// service.go describes mindcheck.assessment.v1.AssessmentService by hand.
// Messages travel as JSON through the codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "mindcheck.assessment.v1.AssessmentService"

// Full method names.
const (
	AssessMethod        = "/" + ServiceName + "/Assess"
	GetAssessmentMethod = "/" + ServiceName + "/GetAssessment"
)

// AssessmentServiceServer is the server API for AssessmentService.
type AssessmentServiceServer interface {
	Assess(context.Context, *AssessRequest) (*AssessResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	mustEmbedUnimplementedAssessmentServiceServer()
}

// UnimplementedAssessmentServiceServer provides forward-compatible default implementations.
type UnimplementedAssessmentServiceServer struct{}

func (UnimplementedAssessmentServiceServer) Assess(context.Context, *AssessRequest) (*AssessResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Assess not implemented")
}
func (UnimplementedAssessmentServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedAssessmentServiceServer) mustEmbedUnimplementedAssessmentServiceServer() {}

// RegisterAssessmentServiceServer registers the AssessmentServiceServer with the gRPC server.
func RegisterAssessmentServiceServer(s grpclib.ServiceRegistrar, srv AssessmentServiceServer) {
	s.RegisterService(&assessmentServiceDesc, srv)
}

var assessmentServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssessmentServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Assess", Handler: assessHandler},
		{MethodName: "GetAssessment", Handler: getAssessmentHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "mindcheck/assessment/v1/assessment.proto",
}

func assessHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssessmentServiceServer).Assess(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: AssessMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AssessmentServiceServer).Assess(ctx, req.(*AssessRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func getAssessmentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssessmentServiceServer).GetAssessment(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: GetAssessmentMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AssessmentServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// Client calls AssessmentService over a connection, forcing the JSON codec.
type Client struct {
	conn grpclib.ClientConnInterface
}

// NewClient creates a client on an established connection.
func NewClient(conn grpclib.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Assess submits one questionnaire.
func (c *Client) Assess(ctx context.Context, req *AssessRequest, opts ...grpclib.CallOption) (*AssessResponse, error) {
	out := new(AssessResponse)
	if err := c.conn.Invoke(ctx, AssessMethod, req, out, append(opts, jsonCallOption())...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAssessment fetches a stored assessment.
func (c *Client) GetAssessment(ctx context.Context, req *GetAssessmentRequest, opts ...grpclib.CallOption) (*GetAssessmentResponse, error) {
	out := new(GetAssessmentResponse)
	if err := c.conn.Invoke(ctx, GetAssessmentMethod, req, out, append(opts, jsonCallOption())...); err != nil {
		return nil, err
	}
	return out, nil
}

func jsonCallOption() grpclib.CallOption {
	return grpclib.ForceCodecCallOption{Codec: jsonCodec{}}
}
