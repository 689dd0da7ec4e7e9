package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/fractalshard/game-api/internal/orchestrators/character Service

import (
	"context"

	"github.com/fractalshard/game-api/internal/entities"
)

// LevelPolicy controls how experience grants that cross the threshold
// convert into levels.
type LevelPolicy string

const (
	// LevelPolicySingle grants at most one level per experience grant;
	// overflow past the threshold is discarded by the stat recompute.
	LevelPolicySingle LevelPolicy = "single"

	// LevelPolicyCascade carries overflow forward and keeps leveling
	// until the total falls below the next threshold.
	LevelPolicyCascade LevelPolicy = "cascade"
)

// Valid reports whether p is a known policy
func (p LevelPolicy) Valid() bool {
	return p == LevelPolicySingle || p == LevelPolicyCascade
}

// Service defines the roster operations
type Service interface {
	// CreateCharacter creates a level-1 character with derived stats
	// Returns errors.InvalidArgument for empty name or unknown class
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// ListCharacters retrieves the full roster
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// UpdateCharacter applies a partial update; class or level changes
	// recompute derived stats, an explicit stat block wins over the recompute
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)

	// SelectCharacter marks a character as active and stamps LastPlayed
	// Returns errors.NotFound for an unknown ID
	SelectCharacter(ctx context.Context, input *SelectCharacterInput) (*SelectCharacterOutput, error)

	// GetSelectedCharacter retrieves the active character
	// Returns errors.NotFound when nothing is selected
	GetSelectedCharacter(ctx context.Context, input *GetSelectedCharacterInput) (*GetSelectedCharacterOutput, error)

	// GrantExperience adds experience and levels the character up per
	// the configured policy
	GrantExperience(ctx context.Context, input *GrantExperienceInput) (*GrantExperienceOutput, error)
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	Name  string
	Class entities.Class
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *entities.Character
}

// ListCharactersInput defines the request for listing the roster
type ListCharactersInput struct{}

// ListCharactersOutput defines the response for listing the roster
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// UpdateCharacterInput defines the request for a partial update.
// Nil fields are left unchanged.
type UpdateCharacterInput struct {
	CharacterID string
	Name        *string
	Class       *entities.Class
	Level       *int
	Stats       *entities.Stats
}

// UpdateCharacterOutput defines the response for updating a character
type UpdateCharacterOutput struct {
	Character *entities.Character
}

// SelectCharacterInput defines the request for selecting a character
type SelectCharacterInput struct {
	CharacterID string
}

// SelectCharacterOutput defines the response for selecting a character
type SelectCharacterOutput struct {
	Character *entities.Character
}

// GetSelectedCharacterInput defines the request for reading the selection
type GetSelectedCharacterInput struct{}

// GetSelectedCharacterOutput defines the response for reading the selection
type GetSelectedCharacterOutput struct {
	Character *entities.Character
}

// GrantExperienceInput defines the request for granting experience
type GrantExperienceInput struct {
	CharacterID string
	Amount      int
}

// GrantExperienceOutput defines the response for granting experience
type GrantExperienceOutput struct {
	Character    *entities.Character
	LevelsGained int
}
