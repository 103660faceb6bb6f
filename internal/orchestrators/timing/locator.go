package timing

import (
	"context"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
)

// ItemLocator finds the item an applied effect came from. The item may be
// owned by a different actor than the one the effect sits on.
type ItemLocator interface {
	// Locate returns nil without error when no actor owns the item
	Locate(ctx context.Context, owner *dx3rd.Actor, itemID string) (*dx3rd.Item, error)
}

type storeLocator struct {
	actorRepo actor.Repository
}

// NewStoreLocator returns an ItemLocator that checks the owner's items first
// and then scans every stored actor, first match wins
func NewStoreLocator(actorRepo actor.Repository) (ItemLocator, error) {
	if actorRepo == nil {
		return nil, errors.InvalidArgument("actor repository is required")
	}
	return &storeLocator{actorRepo: actorRepo}, nil
}

func (l *storeLocator) Locate(ctx context.Context, owner *dx3rd.Actor, itemID string) (*dx3rd.Item, error) {
	if itemID == "" {
		return nil, nil
	}
	if item := owner.FindItem(itemID); item != nil {
		return item, nil
	}

	listOutput, err := l.actorRepo.List(ctx, actor.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actors")
	}

	for _, other := range listOutput.Actors {
		if other == nil || (owner != nil && other.ID == owner.ID) {
			continue
		}
		if item := other.FindItem(itemID); item != nil {
			return item, nil
		}
	}

	return nil, nil
}
