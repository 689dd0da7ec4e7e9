package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/fractalshard/game-api/internal/orchestrators/battle Service

import (
	"context"

	"github.com/fractalshard/game-api/internal/entities"
)

// Service defines the battle engine operations
type Service interface {
	// StartBattle opens a battle between a roster character and a
	// content enemy, at phase ActionSelect
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// GetBattle retrieves a battle by ID
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// SubmitAction resolves a player action. Rejected with
	// errors.FailedPrecondition, with no state change and no log entry,
	// unless the phase is ActionSelect
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// EndBattle tears a battle down, canceling any scheduled enemy stage
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)
}

// StartBattleInput defines the request for starting a battle.
// EnemyID is optional and falls back to the default encounter.
type StartBattleInput struct {
	CharacterID string
	EnemyID     string
}

// StartBattleOutput defines the response for starting a battle
type StartBattleOutput struct {
	Battle *entities.Battle
}

// GetBattleInput defines the request for reading a battle
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput defines the response for reading a battle
type GetBattleOutput struct {
	Battle *entities.Battle
}

// SubmitActionInput defines the request for a player action
type SubmitActionInput struct {
	BattleID string
	Action   entities.BattleAction
}

// SubmitActionOutput defines the response for a player action
type SubmitActionOutput struct {
	Battle *entities.Battle
}

// EndBattleInput defines the request for tearing a battle down
type EndBattleInput struct {
	BattleID string
}

// EndBattleOutput defines the response for tearing a battle down
type EndBattleOutput struct{}
