// Package combat serves the attack flow: which weapons an actor can pick,
// what a selection adds up to, and spending weapon attacks.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/dx3rd-api/internal/orchestrators/combat Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	"github.com/KirkDiggler/dx3rd-api/internal/rules/bonus"
)

const pathAttackUsedState = "system.attackUsed.state"

// MetaConsumed is the error meta key listing the weapon IDs whose attack was
// already spent when ConsumeAttack failed partway.
const MetaConsumed = "consumed"

// Service defines the interface for combat operations
type Service interface {
	// ListWeaponOptions returns the actor's weapons and vehicles ordered for display
	ListWeaponOptions(ctx context.Context, input *ListWeaponOptionsInput) (*ListWeaponOptionsOutput, error)

	// AggregateSelection totals the bonuses of the picked items; exhausted
	// weapons contribute nothing
	AggregateSelection(ctx context.Context, input *AggregateSelectionInput) (*AggregateSelectionOutput, error)

	// ConsumeAttack aggregates like AggregateSelection and then spends one
	// attack on every included weapon that tracks its allowance. Writes stop
	// at the first failure; earlier increments stay and are listed under
	// MetaConsumed on the returned error.
	ConsumeAttack(ctx context.Context, input *ConsumeAttackInput) (*ConsumeAttackOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	ActorRepo actor.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.ActorRepo == nil {
		vb.RequiredField("ActorRepo")
	}
	return vb.Build()
}

type orchestrator struct {
	actorRepo actor.Repository
}

// NewOrchestrator creates a new combat orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		actorRepo: cfg.ActorRepo,
	}, nil
}

func (o *orchestrator) ListWeaponOptions(ctx context.Context, input *ListWeaponOptionsInput) (*ListWeaponOptionsOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	a, err := o.loadActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	combatItems := make([]*dx3rd.Item, 0, len(a.Items))
	for _, item := range a.Items {
		if item.IsCombat() {
			combatItems = append(combatItems, item)
		}
	}

	sorted := bonus.SortForDisplay(combatItems)
	options := make([]*WeaponOption, 0, len(sorted))
	for _, item := range sorted {
		options = append(options, &WeaponOption{
			Item:      item,
			Exhausted: bonus.IsExhausted(item),
		})
	}

	return &ListWeaponOptionsOutput{Options: options}, nil
}

func (o *orchestrator) AggregateSelection(ctx context.Context, input *AggregateSelectionInput) (*AggregateSelectionOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	_, items, err := o.selection(ctx, input.ActorID, input.ItemIDs)
	if err != nil {
		return nil, err
	}

	return &AggregateSelectionOutput{Result: bonus.Aggregate(items)}, nil
}

func (o *orchestrator) ConsumeAttack(ctx context.Context, input *ConsumeAttackInput) (*ConsumeAttackOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	a, items, err := o.selection(ctx, input.ActorID, input.ItemIDs)
	if err != nil {
		return nil, err
	}

	result := bonus.Aggregate(items)
	if len(result.IncludedIDs) == 0 {
		return nil, errors.FailedPrecondition("no usable weapon selected")
	}

	consumed := make([]string, 0, len(result.IncludedIDs))
	for _, id := range result.IncludedIDs {
		item := a.FindItem(id)
		if item.Type != dx3rd.ItemTypeWeapon || item.System.AttackUsed == nil ||
			item.System.AttackUsed.Disable == dx3rd.TimingNotCheck {
			continue
		}

		_, err := o.actorRepo.UpdateItem(ctx, actor.UpdateItemInput{
			ActorID: a.ID,
			ItemID:  id,
			Patch:   fieldpatch.Patch{pathAttackUsedState: item.System.AttackUsed.State + 1},
		})
		if err != nil {
			slog.ErrorContext(ctx, "attack consumption stopped",
				"actor_id", a.ID,
				"item_id", id,
				"consumed", consumed,
				"error", err)
			return nil, errors.ItemWriteFailed(a.ID, id, err).WithMeta(MetaConsumed, consumed)
		}
		consumed = append(consumed, id)
	}

	slog.InfoContext(ctx, "attack consumed",
		"actor_id", a.ID,
		"weapons", result.Names,
		"total_attack", result.TotalAttack,
		"total_add", result.TotalAdd,
		"consumed", len(consumed))

	return &ConsumeAttackOutput{Result: result, Consumed: consumed}, nil
}

// selection loads the actor and resolves item IDs in the order given
func (o *orchestrator) selection(ctx context.Context, actorID string, itemIDs []string) (*dx3rd.Actor, []*dx3rd.Item, error) {
	a, err := o.loadActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	items := make([]*dx3rd.Item, 0, len(itemIDs))
	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			return nil, nil, errors.InvalidArgumentf("item %s selected twice", id)
		}
		seen[id] = true

		item := a.FindItem(id)
		if item == nil {
			return nil, nil, errors.InvalidArgumentf("item %s not found on actor %s", id, actorID)
		}
		if !item.IsCombat() {
			return nil, nil, errors.InvalidArgumentf("item %s is a %s, not a weapon or vehicle", id, item.Type)
		}
		items = append(items, item)
	}

	return a, items, nil
}

func (o *orchestrator) loadActor(ctx context.Context, actorID string) (*dx3rd.Actor, error) {
	getOutput, err := o.actorRepo.Get(ctx, actor.GetInput{ID: actorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load actor %s", actorID)
	}
	return getOutput.Actor, nil
}
