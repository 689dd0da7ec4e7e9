package battle

import (
	"context"
	"sync"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Battle
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.Battle),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a battle, replacing any existing entry with the same ID
func (r *InMemoryRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Battle == nil {
		return nil, errors.InvalidArgument("battle is required")
	}
	if input.Battle.ID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Battle.ID] = input.Battle

	return &SaveOutput{Battle: input.Battle}, nil
}

// Get retrieves a battle by ID
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.store[input.BattleID]
	if !exists {
		return nil, errors.NotFound("battle not found")
	}

	return &GetOutput{Battle: b}, nil
}

// Delete removes a battle
func (r *InMemoryRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.BattleID]; !exists {
		return nil, errors.NotFound("battle not found")
	}

	delete(r.store, input.BattleID)

	return &DeleteOutput{}, nil
}
