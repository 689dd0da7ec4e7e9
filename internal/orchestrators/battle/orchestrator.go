// Package battle implements the turn-based battle orchestrator
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/fractalshard/game-api/internal/content"
	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	"github.com/fractalshard/game-api/internal/pkg/clock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	"github.com/fractalshard/game-api/internal/pkg/scheduler"
	battlerepo "github.com/fractalshard/game-api/internal/repositories/battle"
)

const (
	// DefaultEnemyID is used when StartBattle names no enemy
	DefaultEnemyID = "shadow-sentinel"

	defendedEffectName = "Defended"
	defendedDuration   = 2
	defendedModifier   = 0.5

	skillManaCost = 30

	defaultEnemyTurnDelay = 1500 * time.Millisecond
)

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo       battlerepo.Repository
	CharacterService characterorch.Service
	Enemies          map[string]content.EnemyTemplate
	Scheduler        scheduler.Scheduler
	IDGenerator      idgen.Generator
	Clock            clock.Clock

	// Roller defaults to dice.DefaultRoller
	Roller dice.Roller

	// EnemyTurnDelay is how long after the player acts the enemy stage
	// runs. Defaults to 1.5s.
	EnemyTurnDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if cfg.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if len(cfg.Enemies) == 0 {
		vb.RequiredField("Enemies")
	}
	if cfg.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements the battle Service interface. All mutation of a
// battle, player actions and the scheduled enemy stage alike, is
// serialized through a per-battle mutex.
type Orchestrator struct {
	battleRepo   battlerepo.Repository
	characterSvc characterorch.Service
	enemies      map[string]content.EnemyTemplate
	sched        scheduler.Scheduler
	idGen        idgen.Generator
	clock        clock.Clock
	roller       dice.Roller
	enemyDelay   time.Duration

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	cancels map[string]scheduler.CancelFunc
}

// New creates a new battle orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	delay := cfg.EnemyTurnDelay
	if delay == 0 {
		delay = defaultEnemyTurnDelay
	}

	return &Orchestrator{
		battleRepo:   cfg.BattleRepo,
		characterSvc: cfg.CharacterService,
		enemies:      cfg.Enemies,
		sched:        cfg.Scheduler,
		idGen:        cfg.IDGenerator,
		clock:        cfg.Clock,
		roller:       roller,
		enemyDelay:   delay,
		locks:        make(map[string]*sync.Mutex),
		cancels:      make(map[string]scheduler.CancelFunc),
	}, nil
}

var _ Service = (*Orchestrator)(nil)

// StartBattle opens a battle at phase ActionSelect
func (o *Orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	charOut, err := o.characterSvc.GetCharacter(ctx, &characterorch.GetCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}
	char := charOut.Character

	enemyID := input.EnemyID
	if enemyID == "" {
		enemyID = DefaultEnemyID
	}
	template, ok := o.enemies[enemyID]
	if !ok {
		return nil, errors.NotFoundf("enemy %s not found", enemyID)
	}

	battle := &entities.Battle{
		ID:    o.idGen.Generate(),
		Phase: entities.PhaseActionSelect,
		Turn:  1,
		Player: entities.Combatant{
			ID:    char.ID,
			Name:  char.Name,
			Kind:  "player",
			Level: char.Level,
			HP:    entities.Pool{Current: char.Stats.Health.Max, Max: char.Stats.Health.Max},
			MP:    entities.Pool{Current: char.Stats.Mana.Max, Max: char.Stats.Mana.Max},
		},
		Enemy:     template.Combatant(o.idGen.Generate),
		CreatedAt: o.clock.Now(),
	}

	o.appendLog(battle, fmt.Sprintf("%s appears before you!", battle.Enemy.Name), entities.LogSystem)
	o.appendLog(battle, "Battle start. Choose your action.", entities.LogNormal)

	if _, err := o.battleRepo.Save(ctx, &battlerepo.SaveInput{Battle: battle}); err != nil {
		return nil, errors.Wrap(err, "failed to save battle")
	}

	slog.InfoContext(ctx, "battle started",
		"battle_id", battle.ID,
		"character_id", char.ID,
		"enemy", enemyID)

	return &StartBattleOutput{Battle: battle}, nil
}

// GetBattle retrieves a battle by ID
func (o *Orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.battleRepo.Get(ctx, &battlerepo.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, err
	}

	return &GetBattleOutput{Battle: out.Battle}, nil
}

// SubmitAction resolves a player action and, unless the battle ended or
// the action kept the turn, schedules the enemy stage.
func (o *Orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Action.Valid() {
		return nil, errors.InvalidArgumentf("unknown action %q", input.Action)
	}

	lock := o.battleLock(input.BattleID)
	lock.Lock()
	defer lock.Unlock()

	out, err := o.battleRepo.Get(ctx, &battlerepo.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, err
	}
	battle := out.Battle

	if battle.Phase != entities.PhaseActionSelect {
		return nil, errors.FailedPreconditionf("battle %s is not accepting actions (phase %s)", battle.ID, battle.Phase)
	}

	turnEnds, err := o.resolvePlayerAction(battle, input.Action)
	if err != nil {
		return nil, err
	}

	if battle.Enemy.Defeated() {
		o.completeVictory(battle)
	} else if turnEnds {
		battle.Phase = entities.PhaseEnemyTurn
		o.scheduleEnemyStage(battle.ID)
	}

	if _, err := o.battleRepo.Save(ctx, &battlerepo.SaveInput{Battle: battle}); err != nil {
		return nil, errors.Wrap(err, "failed to save battle")
	}

	return &SubmitActionOutput{Battle: battle}, nil
}

// EndBattle tears a battle down. Any scheduled enemy stage is canceled so
// a stale continuation can never mutate a later battle.
func (o *Orchestrator) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.Lock()
	if cancel, ok := o.cancels[input.BattleID]; ok {
		cancel()
		delete(o.cancels, input.BattleID)
	}
	delete(o.locks, input.BattleID)
	o.mu.Unlock()

	if _, err := o.battleRepo.Delete(ctx, &battlerepo.DeleteInput{BattleID: input.BattleID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "battle ended", "battle_id", input.BattleID)

	return &EndBattleOutput{}, nil
}

// resolvePlayerAction mutates the battle for one player action and
// reports whether the turn passes to the enemy.
func (o *Orchestrator) resolvePlayerAction(battle *entities.Battle, action entities.BattleAction) (bool, error) {
	switch action {
	case entities.ActionAttack:
		dmg, err := o.rollRange(50, 49)
		if err != nil {
			return false, err
		}
		battle.Enemy.HP.Current -= dmg
		battle.Enemy.HP.Clamp()
		o.appendLog(battle, fmt.Sprintf("You attack %s for %d damage!", battle.Enemy.Name, dmg), entities.LogPlayer)
		return true, nil

	case entities.ActionDefend:
		if battle.Player.HasEffect(defendedEffectName) {
			// Duplicate defends are ignored; the existing duration stands.
			o.appendLog(battle, "You are already braced for the next blow.", entities.LogNormal)
			return true, nil
		}
		battle.Player.Effects = append(battle.Player.Effects, entities.StatusEffect{
			ID:       o.idGen.Generate(),
			Name:     defendedEffectName,
			Kind:     entities.EffectBuff,
			Duration: defendedDuration,
			Modifier: defendedModifier,
		})
		o.appendLog(battle, "You raise your guard.", entities.LogPlayer)
		return true, nil

	case entities.ActionSkill:
		if battle.Player.MP.Current < skillManaCost {
			// Log-only branch: no mana spent, the player keeps the turn.
			o.appendLog(battle, "Not enough mana!", entities.LogSystem)
			return false, nil
		}
		dmg, err := o.rollRange(80, 69)
		if err != nil {
			return false, err
		}
		battle.Player.MP.Current -= skillManaCost
		battle.Player.MP.Clamp()
		battle.Enemy.HP.Current -= dmg
		battle.Enemy.HP.Clamp()
		o.appendLog(battle, fmt.Sprintf("You unleash an arc of riftfire at %s for %d damage!", battle.Enemy.Name, dmg), entities.LogCritical)
		return true, nil

	case entities.ActionItem:
		heal, err := o.rollRange(50, 49)
		if err != nil {
			return false, err
		}
		battle.Player.HP.Current += heal
		battle.Player.HP.Clamp()
		o.appendLog(battle, fmt.Sprintf("You drink a shard tonic and recover %d HP!", heal), entities.LogPlayer)
		return true, nil
	}

	return false, errors.InvalidArgumentf("unknown action %q", action)
}

// runEnemyStage is the scheduled continuation of SubmitAction. It re-reads
// the battle under the per-battle lock and bails out if the battle is no
// longer waiting on an enemy turn.
func (o *Orchestrator) runEnemyStage(battleID string) {
	ctx := context.Background()

	lock := o.battleLock(battleID)
	lock.Lock()
	defer lock.Unlock()

	o.mu.Lock()
	delete(o.cancels, battleID)
	o.mu.Unlock()

	out, err := o.battleRepo.Get(ctx, &battlerepo.GetInput{BattleID: battleID})
	if err != nil {
		slog.Warn("enemy stage dropped, battle gone", "battle_id", battleID, "error", err)
		return
	}
	battle := out.Battle

	if battle.Phase != entities.PhaseEnemyTurn {
		slog.Warn("enemy stage dropped, unexpected phase",
			"battle_id", battleID,
			"phase", battle.Phase)
		return
	}

	if err := o.resolveEnemyAction(battle); err != nil {
		slog.Error("enemy stage failed", "battle_id", battleID, "error", err)
		return
	}

	if battle.Player.Defeated() {
		battle.Phase = entities.PhaseComplete
		battle.Outcome = entities.OutcomeDefeat
		o.appendLog(battle, "You collapse as the rift closes around you...", entities.LogCritical)
	} else {
		o.tickStatusEffects(battle)
		battle.Turn++
		battle.Phase = entities.PhaseActionSelect
	}

	if _, err := o.battleRepo.Save(ctx, &battlerepo.SaveInput{Battle: battle}); err != nil {
		slog.Error("failed to save battle after enemy stage", "battle_id", battleID, "error", err)
	}
}

// resolveEnemyAction rolls the enemy's weighted action and applies damage,
// honoring the player's Defended buff.
func (o *Orchestrator) resolveEnemyAction(battle *entities.Battle) error {
	chance, err := o.roller.Roll(10)
	if err != nil {
		return errors.Wrap(err, "failed to roll enemy action")
	}

	var dmg int
	var text string
	if chance >= 8 {
		dmg, err = o.rollRange(60, 49)
		if err != nil {
			return err
		}
		text = fmt.Sprintf("%s unleashes a void surge for %%d damage!", battle.Enemy.Name)
	} else {
		dmg, err = o.rollRange(40, 29)
		if err != nil {
			return err
		}
		text = fmt.Sprintf("%s strikes you for %%d damage!", battle.Enemy.Name)
	}

	if eff, ok := battle.Player.Effect(defendedEffectName); ok {
		dmg = int(float64(dmg) * eff.Modifier)
		o.appendLog(battle, "Your guard absorbs part of the blow!", entities.LogSystem)
	}

	battle.Player.HP.Current -= dmg
	battle.Player.HP.Clamp()
	o.appendLog(battle, fmt.Sprintf(text, dmg), entities.LogEnemy)

	return nil
}

// tickStatusEffects decrements every effect on both sides by one round,
// logging and removing the ones that expire.
func (o *Orchestrator) tickStatusEffects(battle *entities.Battle) {
	battle.Player.Effects = o.tickCombatant(battle, &battle.Player)
	battle.Enemy.Effects = o.tickCombatant(battle, &battle.Enemy)
}

func (o *Orchestrator) tickCombatant(battle *entities.Battle, c *entities.Combatant) []entities.StatusEffect {
	kept := c.Effects[:0]
	for _, eff := range c.Effects {
		eff.Duration--
		if eff.Duration <= 0 {
			o.appendLog(battle, fmt.Sprintf("%s wore off.", eff.Name), entities.LogSystem)
			continue
		}
		kept = append(kept, eff)
	}
	return kept
}

func (o *Orchestrator) completeVictory(battle *entities.Battle) {
	battle.Phase = entities.PhaseComplete
	battle.Outcome = entities.OutcomeVictory
	o.appendLog(battle, fmt.Sprintf("%s is destroyed!", battle.Enemy.Name), entities.LogCritical)
	o.appendLog(battle, "You gained 250 XP and 120 Gold!", entities.LogSystem)
}

func (o *Orchestrator) scheduleEnemyStage(battleID string) {
	cancel := o.sched.AfterFunc(o.enemyDelay, func() {
		o.runEnemyStage(battleID)
	})

	o.mu.Lock()
	o.cancels[battleID] = cancel
	o.mu.Unlock()
}

// rollRange rolls 1dSize+offset through the injected roller
func (o *Orchestrator) rollRange(size, offset int) (int, error) {
	n, err := o.roller.Roll(size)
	if err != nil {
		return 0, errors.Wrap(err, "dice roll failed")
	}
	return n + offset, nil
}

func (o *Orchestrator) battleLock(battleID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	if l, ok := o.locks[battleID]; ok {
		return l
	}
	l := &sync.Mutex{}
	o.locks[battleID] = l
	return l
}

func (o *Orchestrator) appendLog(battle *entities.Battle, text string, category entities.LogCategory) {
	battle.Log = append(battle.Log, entities.LogEntry{
		ID:        o.idGen.Generate(),
		Text:      text,
		Category:  category,
		Timestamp: o.clock.Now(),
	})
}
