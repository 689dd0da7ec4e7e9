// Package battle provides the storage interface for battle state
package battle

//go:generate mockgen -destination=mock/mock_repository.go -package=battlemock github.com/fractalshard/game-api/internal/repositories/battle Repository

import (
	"context"

	"github.com/fractalshard/game-api/internal/entities"
)

// Repository defines the storage interface for battles. Battles are
// ephemeral and live only in memory; the orchestrator serializes all
// mutation per battle, so implementations hand back the stored value.
type Repository interface {
	// Save stores a battle
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a battle by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a battle
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving a battle
type SaveInput struct {
	Battle *entities.Battle
}

// SaveOutput defines the response for saving a battle
type SaveOutput struct {
	Battle *entities.Battle
}

// GetInput defines the request for retrieving a battle
type GetInput struct {
	BattleID string
}

// GetOutput defines the response for retrieving a battle
type GetOutput struct {
	Battle *entities.Battle
}

// DeleteInput defines the request for deleting a battle
type DeleteInput struct {
	BattleID string
}

// DeleteOutput defines the response for deleting a battle
type DeleteOutput struct{}
