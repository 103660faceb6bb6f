// Package v1alpha1 handles the grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/overflow"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/sheet"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing"
	overflowsession "github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session"
	"github.com/KirkDiggler/dx3rd-api/internal/rules/bonus"
	rules "github.com/KirkDiggler/dx3rd-api/internal/rules/overflow"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	TimingService   timing.Service
	CombatService   combat.Service
	OverflowService overflow.Service
	SheetService    sheet.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.TimingService == nil {
		vb.RequiredField("TimingService")
	}
	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.OverflowService == nil {
		vb.RequiredField("OverflowService")
	}
	if c.SheetService == nil {
		vb.RequiredField("SheetService")
	}
	return vb.Build()
}

// Handler implements the DX3rd rules gRPC service
type Handler struct {
	timingService   timing.Service
	combatService   combat.Service
	overflowService overflow.Service
	sheetService    sheet.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		timingService:   cfg.TimingService,
		combatService:   cfg.CombatService,
		overflowService: cfg.OverflowService,
		sheetService:    cfg.SheetService,
	}, nil
}

var _ RulesServiceServer = (*Handler)(nil)

// Sweep expires everything tied to a timing
func (h *Handler) Sweep(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body SweepRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.timingService.Sweep(ctx, &timing.SweepInput{
		Timing: dx3rd.TimingKey(body.Timing),
		Target: timing.Target{
			Mode:     timing.TargetMode(body.Target),
			ActorIDs: body.ActorIDs,
		},
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := SweepResponse{
		ActorsScanned:    output.ActorsScanned,
		ItemsDeactivated: output.ItemsDeactivated,
		UsageReset:       output.UsageReset,
		AttackUsageReset: output.AttackUsageReset,
		EffectsRemoved:   output.EffectsRemoved,
		Failures:         make([]SweepFailure, 0, len(output.Failures)),
	}
	for _, f := range output.Failures {
		resp.Failures = append(resp.Failures, SweepFailure{
			ActorID: f.ActorID,
			ItemID:  f.ItemID,
			Reason:  string(f.Reason),
			Message: f.Message,
		})
	}

	return respond(resp)
}

// ListWeaponOptions returns the actor's weapons in picker order
func (h *Handler) ListWeaponOptions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body ActorRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.combatService.ListWeaponOptions(ctx, &combat.ListWeaponOptionsInput{
		ActorID: body.ActorID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := WeaponOptionsResponse{Options: make([]WeaponOption, 0, len(output.Options))}
	for _, opt := range output.Options {
		if opt == nil || opt.Item == nil {
			continue
		}
		resp.Options = append(resp.Options, WeaponOption{
			ID:        opt.Item.ID,
			Name:      opt.Item.Name,
			Type:      string(opt.Item.Type),
			Attack:    opt.Item.System.Attack.Int(),
			Add:       opt.Item.System.Add.Int(),
			Equipped:  opt.Item.System.Equipment,
			Exhausted: opt.Exhausted,
		})
	}

	return respond(resp)
}

// AggregateWeapons totals the bonus of the picked items
func (h *Handler) AggregateWeapons(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body WeaponSelectionRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.combatService.AggregateSelection(ctx, &combat.AggregateSelectionInput{
		ActorID: body.ActorID,
		ItemIDs: body.ItemIDs,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(convertBonus(output.Result, nil))
}

// ConsumeAttack totals the picked items and spends one attack on each
func (h *Handler) ConsumeAttack(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body WeaponSelectionRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.combatService.ConsumeAttack(ctx, &combat.ConsumeAttackInput{
		ActorID: body.ActorID,
		ItemIDs: body.ItemIDs,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	consumed := output.Consumed
	if consumed == nil {
		consumed = []string{}
	}
	return respond(convertBonus(output.Result, consumed))
}

// StartOverflowSelection opens a dice selection session
func (h *Handler) StartOverflowSelection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body StartSelectionRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.overflowService.Start(ctx, &overflow.StartInput{
		ActorID:       body.ActorID,
		Pool:          body.Pool,
		DiceCount:     body.DiceCount,
		Disabled:      body.Disabled,
		Mode:          rules.Mode(body.Mode),
		Count:         body.Count,
		OverrideTotal: body.OverrideTotal,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(convertSelection(output.Session, output.Preview))
}

// ToggleOverflowDie flips one die of a selection
func (h *Handler) ToggleOverflowDie(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body ToggleDieRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.Index == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("index is required"))
	}

	output, err := h.overflowService.Toggle(ctx, &overflow.ToggleInput{
		SessionID: body.SessionID,
		Index:     *body.Index,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(convertSelection(output.Session, output.Preview))
}

// ConfirmOverflowSelection closes a selection and returns the dice to remove
func (h *Handler) ConfirmOverflowSelection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body SessionRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.overflowService.Confirm(ctx, &overflow.ConfirmInput{
		SessionID: body.SessionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := ConfirmSelectionResponse{
		Indices:      []int{},
		Pool:         nonNil(output.Pool),
		PreviewTotal: output.Preview.PreviewTotal,
	}
	if output.Outcome != nil {
		resp.Indices = nonNil(output.Outcome.Indices)
		resp.NoRemoval = output.Outcome.NoRemoval
	}

	return respond(resp)
}

// CancelOverflowSelection discards a selection
func (h *Handler) CancelOverflowSelection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body SessionRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.overflowService.Cancel(ctx, &overflow.CancelInput{
		SessionID: body.SessionID,
	}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// ApplyFieldChange writes one field on an actor or item
func (h *Handler) ApplyFieldChange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body FieldChangeRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.sheetService.ApplyFieldChange(ctx, &sheet.ApplyFieldChangeInput{
		ActorID: body.ActorID,
		ItemID:  body.ItemID,
		Path:    body.Path,
		Value:   body.Value,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := FieldChangeResponse{}
	if output.Item != nil {
		resp.Item = output.Item
	}
	if output.Actor != nil {
		resp.Actor = output.Actor
	}

	return respond(resp)
}

// ToggleEquipment flips an item's equipment flag
func (h *Handler) ToggleEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body EquipmentRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.sheetService.ToggleEquipment(ctx, &sheet.ToggleEquipmentInput{
		ActorID: body.ActorID,
		ItemID:  body.ItemID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(EquipmentResponse{
		ItemID:   body.ItemID,
		Equipped: output.Equipped,
	})
}

func respond(body interface{}) (*structpb.Struct, error) {
	out, err := Encode(body)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

func convertBonus(result bonus.Result, consumed []string) BonusResponse {
	return BonusResponse{
		TotalAttack: result.TotalAttack,
		TotalAdd:    result.TotalAdd,
		Names:       result.Names,
		IncludedIDs: nonNil(result.IncludedIDs),
		Consumed:    consumed,
	}
}

func convertSelection(session *overflowsession.Session, preview rules.Preview) SelectionResponse {
	resp := SelectionResponse{
		Selected:     nonNil(preview.Selected),
		CurrentTotal: preview.CurrentTotal,
		SelectedSum:  preview.SelectedSum,
		PreviewTotal: preview.PreviewTotal,
		Pool:         []int{},
		Disabled:     []int{},
	}
	if session != nil {
		resp.SessionID = session.ID
		resp.Pool = nonNil(session.State.Pool)
		resp.Disabled = nonNil(session.State.Disabled)
		resp.Mode = string(session.State.Mode)
		resp.Count = session.State.Count
		resp.ExpiresAt = session.ExpiresAt.Unix()
	}
	return resp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
