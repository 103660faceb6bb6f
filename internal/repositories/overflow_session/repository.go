// Package overflowsession stores in-progress spell-overflow dice selections
package overflowsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/dx3rd-api/internal/rules/overflow"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=overflowsessionmock github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session Repository

// Session is a dice selection awaiting confirmation
type Session struct {
	// Unique identifier handed back to the player
	ID string `json:"id"`

	// Actor whose spell overflowed; informational
	ActorID string `json:"actorId,omitempty"`

	// Selection state as of the last toggle
	State overflow.State `json:"state"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	ID      string
	ActorID string
	State   overflow.State
	TTL     time.Duration // How long the session should live
}

// CreateOutput contains the created session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct{}

// Repository defines the interface for selection session storage
type Repository interface {
	// Create stores a new session with the specified TTL
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a live session
	// Returns errors.NotFound if it doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a session's state keeping its expiry
	Update(ctx context.Context, session *Session) error

	// Delete removes a session
	// Returns errors.NotFound if it doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
