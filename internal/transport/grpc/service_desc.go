package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
)

const ClosuresServiceName = "closures.v1.ClosuresService"

const (
	ClosuresService_ListPresets_FullMethodName                = "/" + ClosuresServiceName + "/ListPresets"
	ClosuresService_GetPreset_FullMethodName                  = "/" + ClosuresServiceName + "/GetPreset"
	ClosuresService_CreatePreset_FullMethodName               = "/" + ClosuresServiceName + "/CreatePreset"
	ClosuresService_UpdatePreset_FullMethodName               = "/" + ClosuresServiceName + "/UpdatePreset"
	ClosuresService_DeletePreset_FullMethodName               = "/" + ClosuresServiceName + "/DeletePreset"
	ClosuresService_ResolvePreset_FullMethodName              = "/" + ClosuresServiceName + "/ResolvePreset"
	ClosuresService_CalculateRecurringClosures_FullMethodName = "/" + ClosuresServiceName + "/CalculateRecurringClosures"
	ClosuresService_ExportClosuresICS_FullMethodName          = "/" + ClosuresServiceName + "/ExportClosuresICS"
)

type ClosuresServiceServer interface {
	ListPresets(context.Context, *ListPresetsRequest) (*ListPresetsResponse, error)
	GetPreset(context.Context, *GetPresetRequest) (*GetPresetResponse, error)
	CreatePreset(context.Context, *CreatePresetRequest) (*CreatePresetResponse, error)
	UpdatePreset(context.Context, *UpdatePresetRequest) (*UpdatePresetResponse, error)
	DeletePreset(context.Context, *DeletePresetRequest) (*DeletePresetResponse, error)
	ResolvePreset(context.Context, *ResolvePresetRequest) (*ResolvePresetResponse, error)
	CalculateRecurringClosures(context.Context, *CalculateRecurringClosuresRequest) (*CalculateRecurringClosuresResponse, error)
	ExportClosuresICS(context.Context, *ExportClosuresICSRequest) (*ExportClosuresICSResponse, error)
}

func RegisterClosuresServiceServer(s grpclib.ServiceRegistrar, srv ClosuresServiceServer) {
	s.RegisterService(&ClosuresService_ServiceDesc, srv)
}

// unaryHandler adapts one typed ClosuresServiceServer method to the handler
// signature of grpc.MethodDesc.
func unaryHandler[Req, Resp any](fullMethod string, call func(ClosuresServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpclib.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ClosuresServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ClosuresServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ClosuresService_ServiceDesc = grpclib.ServiceDesc{
	ServiceName: ClosuresServiceName,
	HandlerType: (*ClosuresServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ListPresets", Handler: unaryHandler(ClosuresService_ListPresets_FullMethodName, ClosuresServiceServer.ListPresets)},
		{MethodName: "GetPreset", Handler: unaryHandler(ClosuresService_GetPreset_FullMethodName, ClosuresServiceServer.GetPreset)},
		{MethodName: "CreatePreset", Handler: unaryHandler(ClosuresService_CreatePreset_FullMethodName, ClosuresServiceServer.CreatePreset)},
		{MethodName: "UpdatePreset", Handler: unaryHandler(ClosuresService_UpdatePreset_FullMethodName, ClosuresServiceServer.UpdatePreset)},
		{MethodName: "DeletePreset", Handler: unaryHandler(ClosuresService_DeletePreset_FullMethodName, ClosuresServiceServer.DeletePreset)},
		{MethodName: "ResolvePreset", Handler: unaryHandler(ClosuresService_ResolvePreset_FullMethodName, ClosuresServiceServer.ResolvePreset)},
		{MethodName: "CalculateRecurringClosures", Handler: unaryHandler(ClosuresService_CalculateRecurringClosures_FullMethodName, ClosuresServiceServer.CalculateRecurringClosures)},
		{MethodName: "ExportClosuresICS", Handler: unaryHandler(ClosuresService_ExportClosuresICS_FullMethodName, ClosuresServiceServer.ExportClosuresICS)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "closures/v1/closures.proto",
}

// ClosuresServiceClient calls ClosuresService over the JSON codec.
type ClosuresServiceClient struct {
	cc grpclib.ClientConnInterface
}

func NewClosuresServiceClient(cc grpclib.ClientConnInterface) *ClosuresServiceClient {
	return &ClosuresServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpclib.ClientConnInterface, method string, in any, opts []grpclib.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(JSONCodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClosuresServiceClient) ListPresets(ctx context.Context, in *ListPresetsRequest, opts ...grpclib.CallOption) (*ListPresetsResponse, error) {
	return invoke[ListPresetsResponse](ctx, c.cc, ClosuresService_ListPresets_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) GetPreset(ctx context.Context, in *GetPresetRequest, opts ...grpclib.CallOption) (*GetPresetResponse, error) {
	return invoke[GetPresetResponse](ctx, c.cc, ClosuresService_GetPreset_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) CreatePreset(ctx context.Context, in *CreatePresetRequest, opts ...grpclib.CallOption) (*CreatePresetResponse, error) {
	return invoke[CreatePresetResponse](ctx, c.cc, ClosuresService_CreatePreset_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) UpdatePreset(ctx context.Context, in *UpdatePresetRequest, opts ...grpclib.CallOption) (*UpdatePresetResponse, error) {
	return invoke[UpdatePresetResponse](ctx, c.cc, ClosuresService_UpdatePreset_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) DeletePreset(ctx context.Context, in *DeletePresetRequest, opts ...grpclib.CallOption) (*DeletePresetResponse, error) {
	return invoke[DeletePresetResponse](ctx, c.cc, ClosuresService_DeletePreset_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) ResolvePreset(ctx context.Context, in *ResolvePresetRequest, opts ...grpclib.CallOption) (*ResolvePresetResponse, error) {
	return invoke[ResolvePresetResponse](ctx, c.cc, ClosuresService_ResolvePreset_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) CalculateRecurringClosures(ctx context.Context, in *CalculateRecurringClosuresRequest, opts ...grpclib.CallOption) (*CalculateRecurringClosuresResponse, error) {
	return invoke[CalculateRecurringClosuresResponse](ctx, c.cc, ClosuresService_CalculateRecurringClosures_FullMethodName, in, opts)
}

func (c *ClosuresServiceClient) ExportClosuresICS(ctx context.Context, in *ExportClosuresICSRequest, opts ...grpclib.CallOption) (*ExportClosuresICSResponse, error) {
	return invoke[ExportClosuresICSResponse](ctx, c.cc, ClosuresService_ExportClosuresICS_FullMethodName, in, opts)
}
