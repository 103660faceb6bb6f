// Package sheet applies single-field edits made on an actor sheet
package sheet

//go:generate mockgen -destination=mock/mock_service.go -package=sheetmock github.com/KirkDiggler/dx3rd-api/internal/orchestrators/sheet Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
)

const pathEquipment = "system.equipment"

// Root fields no field change may touch
var (
	protectedActorFields = map[string]bool{"id": true, "type": true, "items": true}
	protectedItemFields  = map[string]bool{"id": true, "type": true}
)

// Service defines the interface for sheet edits
type Service interface {
	// ApplyFieldChange writes one dot-path field on an actor or one of its items
	ApplyFieldChange(ctx context.Context, input *ApplyFieldChangeInput) (*ApplyFieldChangeOutput, error)

	// ToggleEquipment flips an item's equipment flag
	ToggleEquipment(ctx context.Context, input *ToggleEquipmentInput) (*ToggleEquipmentOutput, error)
}

// Config holds the dependencies for the sheet orchestrator
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

// NewOrchestrator creates a new sheet orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{actorRepo: cfg.ActorRepo}, nil
}

func (o *orchestrator) ApplyFieldChange(ctx context.Context, input *ApplyFieldChangeInput) (*ApplyFieldChangeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actor_id", input.ActorID, vb)
	if err := validatePath(input.Path, input.ItemID != "", vb); err != nil {
		return nil, err
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	patch := fieldpatch.Patch{input.Path: input.Value}

	if input.ItemID != "" {
		updateOutput, err := o.actorRepo.UpdateItem(ctx, actor.UpdateItemInput{
			ActorID: input.ActorID,
			ItemID:  input.ItemID,
			Patch:   patch,
		})
		if err != nil {
			return nil, errors.ItemWriteFailed(input.ActorID, input.ItemID, err)
		}

		slog.InfoContext(ctx, "item field changed",
			"actor_id", input.ActorID,
			"item_id", input.ItemID,
			"path", input.Path)

		return &ApplyFieldChangeOutput{Item: updateOutput.Item}, nil
	}

	updateOutput, err := o.actorRepo.UpdateActor(ctx, actor.UpdateActorInput{
		ActorID: input.ActorID,
		Patch:   patch,
	})
	if err != nil {
		return nil, errors.ActorWriteFailed(input.ActorID, err)
	}

	slog.InfoContext(ctx, "actor field changed",
		"actor_id", input.ActorID,
		"path", input.Path)

	return &ApplyFieldChangeOutput{Actor: updateOutput.Actor}, nil
}

func (o *orchestrator) ToggleEquipment(ctx context.Context, input *ToggleEquipmentInput) (*ToggleEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actor_id", input.ActorID, vb)
	errors.ValidateRequired("item_id", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	getOutput, err := o.actorRepo.Get(ctx, actor.GetInput{ID: input.ActorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load actor %s", input.ActorID)
	}

	item := getOutput.Actor.FindItem(input.ItemID)
	if item == nil {
		return nil, errors.NotFoundf("item %s not found on actor %s", input.ItemID, input.ActorID)
	}

	equipped := !item.System.Equipment
	updateOutput, err := o.actorRepo.UpdateItem(ctx, actor.UpdateItemInput{
		ActorID: input.ActorID,
		ItemID:  input.ItemID,
		Patch:   fieldpatch.Patch{pathEquipment: equipped},
	})
	if err != nil {
		return nil, errors.ItemWriteFailed(input.ActorID, input.ItemID, err)
	}

	slog.InfoContext(ctx, "equipment toggled",
		"actor_id", input.ActorID,
		"item_id", input.ItemID,
		"equipped", equipped)

	return &ToggleEquipmentOutput{Item: updateOutput.Item, Equipped: equipped}, nil
}

// validatePath rejects empty paths, deletions and writes to identity fields.
// Identity problems are returned directly; they are not field validation.
func validatePath(path string, onItem bool, vb *errors.ValidationBuilder) error {
	if strings.TrimSpace(path) == "" {
		vb.RequiredField("path")
		return nil
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			vb.Field("path", "must not contain empty segments")
			return nil
		}
		if strings.HasPrefix(segment, fieldpatch.DeletePrefix) {
			vb.Field("path", "deletions are not field changes")
			return nil
		}
	}

	protected := protectedActorFields
	if onItem {
		protected = protectedItemFields
	}
	if protected[segments[0]] {
		return errors.InvalidArgumentf("field %q cannot be changed", segments[0])
	}

	return nil
}
