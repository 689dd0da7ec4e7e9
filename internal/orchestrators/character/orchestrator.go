// Package character implements the roster orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	"github.com/fractalshard/game-api/internal/pkg/clock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	characterrepo "github.com/fractalshard/game-api/internal/repositories/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// LevelPolicy defaults to LevelPolicySingle when unset
	LevelPolicy LevelPolicy
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	if cfg.LevelPolicy != "" && !cfg.LevelPolicy.Valid() {
		vb.Fieldf("LevelPolicy", "unknown policy %q", cfg.LevelPolicy)
	}

	return vb.Build()
}

// Orchestrator implements the character Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	idGen         idgen.Generator
	clock         clock.Clock
	levelPolicy   LevelPolicy
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	policy := cfg.LevelPolicy
	if policy == "" {
		policy = LevelPolicySingle
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		levelPolicy:   policy,
	}, nil
}

var _ Service = (*Orchestrator)(nil)

// CreateCharacter creates a level-1 character with derived stats
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Name == "" {
		vb.RequiredField("Name")
	}
	if !input.Class.Valid() {
		vb.Fieldf("Class", "unknown class %q", input.Class)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char := &entities.Character{
		ID:         o.idGen.Generate(),
		Name:       input.Name,
		Class:      input.Class,
		Level:      1,
		LastPlayed: o.clock.Now(),
		Stats:      entities.CalculateStats(input.Class, 1),
	}

	out, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	// A new character is immediately the active one.
	if _, err := o.characterRepo.SetSelected(ctx, characterrepo.SetSelectedInput{ID: char.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to select created character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", char.ID,
		"class", char.Class,
		"name", char.Name)

	return &CreateCharacterOutput{Character: out.Character}, nil
}

// GetCharacter retrieves a character by ID
func (o *Orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: out.Character}, nil
}

// ListCharacters retrieves the full roster
func (o *Orchestrator) ListCharacters(ctx context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	out, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &ListCharactersOutput{Characters: out.Characters}, nil
}

// UpdateCharacter applies a partial update. A class or level change
// recomputes the derived stats; an explicit stat block wins over the
// recompute.
func (o *Orchestrator) UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOut.Character

	vb := errors.NewValidationBuilder()
	if input.Name != nil && *input.Name == "" {
		vb.Field("Name", "cannot be empty")
	}
	if input.Class != nil && !input.Class.Valid() {
		vb.Fieldf("Class", "unknown class %q", *input.Class)
	}
	if input.Level != nil && *input.Level < 1 {
		vb.Field("Level", "must be at least 1")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	// Supplying Class or Level recomputes the derived stats even when the
	// value is unchanged. Accrued experience and spent pools are discarded
	// unless re-supplied through Stats.
	recompute := false
	if input.Name != nil {
		char.Name = *input.Name
	}
	if input.Class != nil {
		char.Class = *input.Class
		recompute = true
	}
	if input.Level != nil {
		char.Level = *input.Level
		recompute = true
	}
	if recompute {
		char.Stats = entities.CalculateStats(char.Class, char.Level)
	}
	if input.Stats != nil {
		char.Stats = *input.Stats
		char.Stats.Health.Clamp()
		char.Stats.Mana.Clamp()
	}

	updateOut, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	return &UpdateCharacterOutput{Character: updateOut.Character}, nil
}

// SelectCharacter marks a character as active and stamps LastPlayed
func (o *Orchestrator) SelectCharacter(ctx context.Context, input *SelectCharacterInput) (*SelectCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOut.Character

	char.LastPlayed = o.clock.Now()
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, errors.Wrap(err, "failed to stamp last played")
	}

	if _, err := o.characterRepo.SetSelected(ctx, characterrepo.SetSelectedInput{ID: char.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to select character")
	}

	slog.InfoContext(ctx, "character selected", "character_id", char.ID)

	return &SelectCharacterOutput{Character: char}, nil
}

// GetSelectedCharacter retrieves the active character
func (o *Orchestrator) GetSelectedCharacter(ctx context.Context, _ *GetSelectedCharacterInput) (*GetSelectedCharacterOutput, error) {
	out, err := o.characterRepo.GetSelected(ctx, characterrepo.GetSelectedInput{})
	if err != nil {
		return nil, err
	}

	return &GetSelectedCharacterOutput{Character: out.Character}, nil
}

// GrantExperience adds experience and applies the leveling policy.
// A level-up fully recomputes the stat block, refilling health and mana.
func (o *Orchestrator) GrantExperience(ctx context.Context, input *GrantExperienceInput) (*GrantExperienceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("amount cannot be negative")
	}

	getOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOut.Character

	levels := 0
	total := char.Stats.Experience.Current + input.Amount

	switch o.levelPolicy {
	case LevelPolicyCascade:
		next := char.Stats.Experience.Next
		for total >= next {
			carry := total - next
			char.Level++
			levels++
			total = 500*char.Level - 250 + carry
			next = 500 * char.Level
		}
		char.Stats = entities.CalculateStats(char.Class, char.Level)
		char.Stats.Experience.Current = total
	default: // LevelPolicySingle
		if total >= char.Stats.Experience.Next {
			char.Level++
			levels++
			// Recompute resets experience to the new level's baseline;
			// overflow past the threshold is discarded.
			char.Stats = entities.CalculateStats(char.Class, char.Level)
		} else {
			char.Stats.Experience.Current = total
		}
	}

	updateOut, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save experience grant")
	}

	if levels > 0 {
		slog.InfoContext(ctx, "character leveled up",
			"character_id", char.ID,
			"level", char.Level,
			"levels_gained", levels)
	}

	return &GrantExperienceOutput{
		Character:    updateOut.Character,
		LevelsGained: levels,
	}, nil
}
