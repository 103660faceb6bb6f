package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dx3rd.api.v1alpha1.RulesService"

// RPC method names
const (
	MethodSweep                    = "Sweep"
	MethodListWeaponOptions        = "ListWeaponOptions"
	MethodAggregateWeapons         = "AggregateWeapons"
	MethodConsumeAttack            = "ConsumeAttack"
	MethodStartOverflowSelection   = "StartOverflowSelection"
	MethodToggleOverflowDie        = "ToggleOverflowDie"
	MethodConfirmOverflowSelection = "ConfirmOverflowSelection"
	MethodCancelOverflowSelection  = "CancelOverflowSelection"
	MethodApplyFieldChange         = "ApplyFieldChange"
	MethodToggleEquipment          = "ToggleEquipment"
)

// FullMethod returns the path clients invoke a method on
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// RulesServiceServer is the server API for RulesService. Requests and
// responses are google.protobuf.Struct messages.
type RulesServiceServer interface {
	Sweep(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListWeaponOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AggregateWeapons(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConsumeAttack(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartOverflowSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleOverflowDie(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmOverflowSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelOverflowSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyFieldChange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRulesServiceServer registers srv on s
func RegisterRulesServiceServer(s grpc.ServiceRegistrar, srv RulesServiceServer) {
	s.RegisterService(&RulesServiceDesc, srv)
}

// RulesServiceDesc is the grpc.ServiceDesc for RulesService
var RulesServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RulesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodSweep, RulesServiceServer.Sweep),
		unary(MethodListWeaponOptions, RulesServiceServer.ListWeaponOptions),
		unary(MethodAggregateWeapons, RulesServiceServer.AggregateWeapons),
		unary(MethodConsumeAttack, RulesServiceServer.ConsumeAttack),
		unary(MethodStartOverflowSelection, RulesServiceServer.StartOverflowSelection),
		unary(MethodToggleOverflowDie, RulesServiceServer.ToggleOverflowDie),
		unary(MethodConfirmOverflowSelection, RulesServiceServer.ConfirmOverflowSelection),
		unary(MethodCancelOverflowSelection, RulesServiceServer.CancelOverflowSelection),
		unary(MethodApplyFieldChange, RulesServiceServer.ApplyFieldChange),
		unary(MethodToggleEquipment, RulesServiceServer.ToggleEquipment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dx3rd/api/v1alpha1/rules.proto",
}

type unaryMethod func(RulesServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unary builds the MethodDesc protoc-gen-go-grpc would generate for a
// Struct-in, Struct-out method
func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RulesServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(RulesServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
