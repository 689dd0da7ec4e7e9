// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/fractalshard/game-api/internal/repositories/character Repository

import (
	"context"

	"github.com/fractalshard/game-api/internal/entities"
)

// Repository defines the interface for roster persistence. The roster also
// tracks which character is currently selected.
type Repository interface {
	// Create creates a new character
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a character with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing character
	// Returns errors.NotFound if the character doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// List retrieves the full roster
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// SetSelected marks a character as the selected one
	// Returns errors.NotFound if the character doesn't exist
	SetSelected(ctx context.Context, input SetSelectedInput) (*SetSelectedOutput, error)

	// GetSelected retrieves the selected character
	// Returns errors.NotFound when nothing is selected
	GetSelected(ctx context.Context, input GetSelectedInput) (*GetSelectedOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *entities.Character
}

// ListInput defines the input for listing the roster
type ListInput struct{}

// ListOutput defines the output for listing the roster
type ListOutput struct {
	Characters []*entities.Character
}

// SetSelectedInput defines the input for selecting a character
type SetSelectedInput struct {
	ID string
}

// SetSelectedOutput defines the output for selecting a character
type SetSelectedOutput struct{}

// GetSelectedInput defines the input for reading the selection
type GetSelectedInput struct{}

// GetSelectedOutput defines the output for reading the selection
type GetSelectedOutput struct {
	Character *entities.Character
}
