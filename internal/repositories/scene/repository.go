// Package scene provides the interface for scene persistence and the
// active-scene pointer
package scene

//go:generate mockgen -destination=mock/mock_repository.go -package=scenemock github.com/KirkDiggler/dx3rd-api/internal/repositories/scene Repository

import (
	"context"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
)

// Repository defines the interface for scene persistence
type Repository interface {
	// Save creates or replaces a scene
	// Returns errors.InvalidArgument for validation failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a scene by ID
	// Returns errors.NotFound if the scene doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Activate marks a stored scene as the one being played
	// Returns errors.NotFound if the scene doesn't exist
	Activate(ctx context.Context, input ActivateInput) (*ActivateOutput, error)

	// GetActive retrieves the scene being played
	// Returns errors.NotFound if no scene is active
	GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error)
}

// SaveInput defines the input for saving a scene
type SaveInput struct {
	Scene *dx3rd.Scene
}

// SaveOutput defines the output for saving a scene
type SaveOutput struct {
	Scene *dx3rd.Scene
}

// GetInput defines the input for getting a scene
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a scene
type GetOutput struct {
	Scene *dx3rd.Scene
}

// ActivateInput defines the input for activating a scene
type ActivateInput struct {
	ID string
}

// ActivateOutput defines the output for activating a scene
type ActivateOutput struct {
	Scene *dx3rd.Scene
}

// GetActiveInput defines the input for getting the active scene
type GetActiveInput struct{}

// GetActiveOutput defines the output for getting the active scene
type GetActiveOutput struct {
	Scene *dx3rd.Scene
}
