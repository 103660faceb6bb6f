package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
	combatmock "github.com/KirkDiggler/dx3rd-api/internal/orchestrators/combat/mock"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/overflow"
	overflowmock "github.com/KirkDiggler/dx3rd-api/internal/orchestrators/overflow/mock"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/sheet"
	sheetmock "github.com/KirkDiggler/dx3rd-api/internal/orchestrators/sheet/mock"
	timingmock "github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing/mock"
)

func startServer(t *testing.T, cfg *v1alpha1.HandlerConfig) *grpc.ClientConn {
	t.Helper()

	handler, err := v1alpha1.NewHandler(cfg)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterRulesServiceServer(srv, handler)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestRulesServiceOverGRPC(t *testing.T) {
	ctrl := gomock.NewController(t)
	sheetSvc := sheetmock.NewMockService(ctrl)
	overflowSvc := overflowmock.NewMockService(ctrl)

	conn := startServer(t, &v1alpha1.HandlerConfig{
		TimingService:   timingmock.NewMockService(ctrl),
		CombatService:   combatmock.NewMockService(ctrl),
		OverflowService: overflowSvc,
		SheetService:    sheetSvc,
	})
	ctx := context.Background()

	t.Run("toggle equipment", func(t *testing.T) {
		sheetSvc.EXPECT().
			ToggleEquipment(gomock.Any(), &sheet.ToggleEquipmentInput{ActorID: "kaito", ItemID: "blade"}).
			Return(&sheet.ToggleEquipmentOutput{Equipped: false}, nil)

		req, err := structpb.NewStruct(map[string]interface{}{"actorId": "kaito", "itemId": "blade"})
		require.NoError(t, err)

		resp := &structpb.Struct{}
		err = conn.Invoke(ctx, v1alpha1.FullMethod(v1alpha1.MethodToggleEquipment), req, resp)
		require.NoError(t, err)
		assert.Equal(t, "blade", resp.GetFields()["itemId"].GetStringValue())
		assert.False(t, resp.GetFields()["equipped"].GetBoolValue())
	})

	t.Run("rejection keeps its reason", func(t *testing.T) {
		overflowSvc.EXPECT().
			Confirm(gomock.Any(), &overflow.ConfirmInput{SessionID: "sel_1"}).
			Return(nil, errors.CountMismatch(2, 1))

		req, err := structpb.NewStruct(map[string]interface{}{"sessionId": "sel_1"})
		require.NoError(t, err)

		err = conn.Invoke(ctx, v1alpha1.FullMethod(v1alpha1.MethodConfirmOverflowSelection), req, &structpb.Struct{})
		require.Error(t, err)
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
		assert.True(t, errors.HasReason(errors.FromGRPCError(err), errors.ReasonCountMismatch))
	})

	t.Run("unknown method", func(t *testing.T) {
		err := conn.Invoke(ctx, v1alpha1.FullMethod("Nope"), &structpb.Struct{}, &structpb.Struct{})
		assert.Equal(t, codes.Unimplemented, status.Code(err))
	})
}
