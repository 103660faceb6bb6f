// Package actor provides the interface for actor document persistence
package actor

//go:generate mockgen -destination=mock/mock_repository.go -package=actormock github.com/KirkDiggler/dx3rd-api/internal/repositories/actor Repository

import (
	"context"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
)

// Repository defines the interface for actor persistence.
// Writes are nested-path patches so concurrent writers touching different
// fields of the same actor do not clobber each other.
type Repository interface {
	// Create stores a new actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an actor with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an actor by ID
	// Returns errors.NotFound if the actor doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves every stored actor ordered by ID
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// UpdateActor applies a field patch to the actor document
	// Returns errors.NotFound if the actor doesn't exist
	// Returns errors.Aborted if the document changed underneath the patch
	UpdateActor(ctx context.Context, input UpdateActorInput) (*UpdateActorOutput, error)

	// UpdateItem applies a field patch to one item of the actor
	// Returns errors.NotFound if the actor or item doesn't exist
	// Returns errors.Aborted if the document changed underneath the patch
	UpdateItem(ctx context.Context, input UpdateItemInput) (*UpdateItemOutput, error)

	// Delete removes an actor
	// Returns errors.NotFound if the actor doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating an actor
type CreateInput struct {
	Actor *dx3rd.Actor
}

// CreateOutput defines the output for creating an actor
type CreateOutput struct {
	Actor *dx3rd.Actor
}

// GetInput defines the input for getting an actor
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an actor
type GetOutput struct {
	Actor *dx3rd.Actor
}

// ListInput defines the input for listing actors
type ListInput struct{}

// ListOutput defines the output for listing actors
type ListOutput struct {
	Actors []*dx3rd.Actor
}

// UpdateActorInput patches actor-level fields, e.g. system.appliedEffects.-=fx1
type UpdateActorInput struct {
	ActorID string
	Patch   fieldpatch.Patch
}

// UpdateActorOutput returns the actor after the patch
type UpdateActorOutput struct {
	Actor *dx3rd.Actor
}

// UpdateItemInput patches item fields; paths are relative to the item, e.g. system.active.state
type UpdateItemInput struct {
	ActorID string
	ItemID  string
	Patch   fieldpatch.Patch
}

// UpdateItemOutput returns the item after the patch
type UpdateItemOutput struct {
	Item *dx3rd.Item
}

// DeleteInput defines the input for deleting an actor
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an actor
type DeleteOutput struct{}
