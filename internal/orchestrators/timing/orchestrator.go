// Package timing expires temporary sheet state when a game timing passes:
// the end of a round, a scene, a session and so on.
//
// A sweep visits each target actor and
//   - switches off active items whose active.disable matches the timing
//   - resets used.state and attackUsed.state counters that reset on it
//   - deletes applied effects that expire on it, either by their own
//     disable or by the effect.disable of the item they came from
//
// Every write is independent. A failed write is logged and reported but the
// sweep carries on with the remaining items and actors.
package timing

//go:generate mockgen -destination=mock/mock_service.go -package=timingmock github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing Service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/scene"
)

// Field paths written by the sweep
const (
	pathActiveState     = "system.active.state"
	pathUsedState       = "system.used.state"
	pathAttackUsedState = "system.attackUsed.state"
	pathAppliedEffects  = "system.appliedEffects"
)

// Service defines the interface for timing sweeps
type Service interface {
	// Sweep expires everything tied to the input timing on the target actors.
	// An empty timing is a logged no-op; an unknown timing is InvalidArgument.
	Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error)
}

// Config holds the dependencies for the timing orchestrator
type Config struct {
	ActorRepo   actor.Repository
	SceneRepo   scene.Repository
	ItemLocator ItemLocator
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
	if c.SceneRepo == nil {
		vb.RequiredField("SceneRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	actorRepo actor.Repository
	sceneRepo scene.Repository
	locator   ItemLocator
}

// NewOrchestrator creates a new timing orchestrator. When no ItemLocator is
// given the store-backed one is used.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	locator := cfg.ItemLocator
	if locator == nil {
		var err error
		locator, err = NewStoreLocator(cfg.ActorRepo)
		if err != nil {
			return nil, err
		}
	}

	return &orchestrator{
		actorRepo: cfg.ActorRepo,
		sceneRepo: cfg.SceneRepo,
		locator:   locator,
	}, nil
}

func (o *orchestrator) Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output := &SweepOutput{}

	if input.Timing == "" {
		err := errors.NoTimingSpecified()
		slog.WarnContext(ctx, "sweep requested without timing",
			"reason", errors.GetReason(err))
		return output, nil
	}

	timing, err := dx3rd.ParseTimingKey(string(input.Timing))
	if err != nil {
		return nil, errors.InvalidArgumentf("unknown timing %q", input.Timing)
	}

	actors, err := o.resolveTargets(ctx, input.Target)
	if err != nil {
		return nil, err
	}

	for _, a := range actors {
		output.ActorsScanned++
		o.sweepActor(ctx, timing, a, output)
	}

	slog.InfoContext(ctx, "sweep completed",
		"timing", timing,
		"actors_scanned", output.ActorsScanned,
		"items_deactivated", output.ItemsDeactivated,
		"usage_reset", output.UsageReset,
		"attack_usage_reset", output.AttackUsageReset,
		"effects_removed", output.EffectsRemoved,
		"failures", len(output.Failures))

	return output, nil
}

func (o *orchestrator) resolveTargets(ctx context.Context, target Target) ([]*dx3rd.Actor, error) {
	var ids []string

	mode := target.Mode
	if mode == "" {
		mode = TargetAll
		if len(target.ActorIDs) > 0 {
			mode = TargetMany
		}
	}

	switch mode {
	case TargetAll:
		activeOutput, err := o.sceneRepo.GetActive(ctx, scene.GetActiveInput{})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.InfoContext(ctx, "no active scene, nothing to sweep")
				return nil, nil
			}
			return nil, errors.Wrap(err, "failed to load active scene")
		}
		ids = activeOutput.Scene.ActorIDs()
	case TargetOne:
		if len(target.ActorIDs) != 1 {
			return nil, errors.InvalidArgumentf("target one needs exactly one actor, got %d", len(target.ActorIDs))
		}
		ids = target.ActorIDs
	case TargetMany:
		ids = target.ActorIDs
	default:
		return nil, errors.InvalidArgumentf("unknown target mode %q", target.Mode)
	}

	actors := make([]*dx3rd.Actor, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		getOutput, err := o.actorRepo.Get(ctx, actor.GetInput{ID: id})
		if err != nil {
			slog.WarnContext(ctx, "skipping actor that could not be loaded",
				"actor_id", id,
				"error", err)
			continue
		}
		if !getOutput.Actor.IsCharacter() {
			slog.DebugContext(ctx, "skipping non-character actor",
				"actor_id", id,
				"type", getOutput.Actor.Type)
			continue
		}
		actors = append(actors, getOutput.Actor)
	}

	return actors, nil
}

func (o *orchestrator) sweepActor(ctx context.Context, timing dx3rd.TimingKey, a *dx3rd.Actor, output *SweepOutput) {
	for _, item := range a.Items {
		if item == nil {
			continue
		}
		if item.System.Active.State && item.System.Active.Disable == timing {
			if o.writeItem(ctx, a.ID, item.ID, pathActiveState, false, output) {
				output.ItemsDeactivated++
			}
		}
	}

	for _, item := range a.Items {
		if item == nil {
			continue
		}
		if item.System.Used.Disable == timing && item.System.Used.State > 0 {
			if o.writeItem(ctx, a.ID, item.ID, pathUsedState, 0, output) {
				output.UsageReset++
			}
		}
	}

	for _, item := range a.Items {
		if item == nil || item.System.AttackUsed == nil {
			continue
		}
		if item.System.AttackUsed.Disable == timing && item.System.AttackUsed.State > 0 {
			if o.writeItem(ctx, a.ID, item.ID, pathAttackUsedState, 0, output) {
				output.AttackUsageReset++
			}
		}
	}

	o.removeEffects(ctx, timing, a, output)
}

func (o *orchestrator) removeEffects(ctx context.Context, timing dx3rd.TimingKey, a *dx3rd.Actor, output *SweepOutput) {
	effectIDs := make([]string, 0, len(a.System.AppliedEffects))
	for id := range a.System.AppliedEffects {
		effectIDs = append(effectIDs, id)
	}
	sort.Strings(effectIDs)

	patch := fieldpatch.Patch{}
	for _, id := range effectIDs {
		if o.effectExpires(ctx, timing, a, a.System.AppliedEffects[id]) {
			patch[fieldpatch.DeleteKey(pathAppliedEffects, id)] = nil
		}
	}
	if len(patch) == 0 {
		return
	}

	_, err := o.actorRepo.UpdateActor(ctx, actor.UpdateActorInput{
		ActorID: a.ID,
		Patch:   patch,
	})
	if err != nil {
		failure := errors.ActorWriteFailed(a.ID, err)
		slog.ErrorContext(ctx, "failed to remove applied effects",
			"actor_id", a.ID,
			"effects", len(patch),
			"reason", errors.GetReason(failure),
			"error", err)
		output.Failures = append(output.Failures, Failure{
			ActorID: a.ID,
			Reason:  errors.ReasonActorWriteFailed,
			Message: failure.Error(),
		})
		return
	}

	output.EffectsRemoved += len(patch)
}

// effectExpires applies the own-timing rule first; the source item's timing
// is only consulted for effects without one
func (o *orchestrator) effectExpires(ctx context.Context, timing dx3rd.TimingKey, a *dx3rd.Actor, effect *dx3rd.AppliedEffect) bool {
	if effect == nil {
		return false
	}
	if effect.Disable == timing {
		return true
	}
	if effect.HasOwnTiming() || effect.ItemID == "" {
		return false
	}

	item, err := o.locator.Locate(ctx, a, effect.ItemID)
	if err != nil {
		slog.WarnContext(ctx, "failed to locate effect source item",
			"actor_id", a.ID,
			"item_id", effect.ItemID,
			"error", err)
		return false
	}

	return item != nil && item.System.Effect.Disable == timing
}

// writeItem patches one field of one item and records a failure instead of
// returning it
func (o *orchestrator) writeItem(ctx context.Context, actorID, itemID, path string, value interface{}, output *SweepOutput) bool {
	_, err := o.actorRepo.UpdateItem(ctx, actor.UpdateItemInput{
		ActorID: actorID,
		ItemID:  itemID,
		Patch:   fieldpatch.Patch{path: value},
	})
	if err != nil {
		failure := errors.ItemWriteFailed(actorID, itemID, err)
		slog.ErrorContext(ctx, "failed to write item",
			"actor_id", actorID,
			"item_id", itemID,
			"path", path,
			"reason", errors.GetReason(failure),
			"error", err)
		output.Failures = append(output.Failures, Failure{
			ActorID: actorID,
			ItemID:  itemID,
			Reason:  errors.ReasonItemWriteFailed,
			Message: failure.Error(),
		})
		return false
	}

	return true
}
