package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// BattlePhase is a state of the battle machine
type BattlePhase string

// Battle phases. ActionSelect accepts a player action; EnemyTurn means the
// enemy stage is scheduled but has not resolved yet; Complete is terminal.
const (
	PhaseActionSelect BattlePhase = "action_select"
	PhaseEnemyTurn    BattlePhase = "enemy_turn"
	PhaseComplete     BattlePhase = "complete"
)

// BattleOutcome is set when a battle completes
type BattleOutcome string

// Battle outcomes
const (
	OutcomeUndecided BattleOutcome = ""
	OutcomeVictory   BattleOutcome = "victory"
	OutcomeDefeat    BattleOutcome = "defeat"
)

// BattleAction is a player action
type BattleAction string

// Player actions
const (
	ActionAttack BattleAction = "attack"
	ActionDefend BattleAction = "defend"
	ActionSkill  BattleAction = "skill"
	ActionItem   BattleAction = "item"
)

// Valid reports whether a is a known player action
func (a BattleAction) Valid() bool {
	switch a {
	case ActionAttack, ActionDefend, ActionSkill, ActionItem:
		return true
	}
	return false
}

// EffectKind distinguishes buffs from debuffs
type EffectKind string

// Effect kinds
const (
	EffectBuff   EffectKind = "buff"
	EffectDebuff EffectKind = "debuff"
)

// StatusEffect is a timed modifier on a combatant. Duration is decremented
// once per completed round; the effect is removed the moment it reaches 0.
// Modifier carries the effect's numeric behavior (e.g. 0.5 damage taken
// while Defended).
type StatusEffect struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Kind     EffectKind `json:"kind"`
	Duration int        `json:"duration"`
	Modifier float64    `json:"modifier,omitempty"`
}

// Combatant is one side of a battle; player and enemy are structurally
// identical.
type Combatant struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Kind    string         `json:"kind"` // "player" or "enemy"
	Level   int            `json:"level"`
	HP      Pool           `json:"hp"`
	MP      Pool           `json:"mp"`
	Effects []StatusEffect `json:"effects"`
}

// GetID implements core.Entity
func (c *Combatant) GetID() string { return c.ID }

// GetType implements core.Entity
func (c *Combatant) GetType() string { return c.Kind }

var _ core.Entity = (*Combatant)(nil)

// HasEffect reports whether an effect with the given name is active
func (c *Combatant) HasEffect(name string) bool {
	_, ok := c.Effect(name)
	return ok
}

// Effect returns the active effect with the given name
func (c *Combatant) Effect(name string) (*StatusEffect, bool) {
	for i := range c.Effects {
		if c.Effects[i].Name == name {
			return &c.Effects[i], true
		}
	}
	return nil, false
}

// Defeated reports whether the combatant's HP has reached zero
func (c *Combatant) Defeated() bool {
	return c.HP.Current <= 0
}

// LogCategory classifies a combat log entry for display
type LogCategory string

// Log categories
const (
	LogNormal   LogCategory = "normal"
	LogPlayer   LogCategory = "player"
	LogEnemy    LogCategory = "enemy"
	LogSystem   LogCategory = "system"
	LogCritical LogCategory = "critical"
)

// LogEntry is one line of the append-only combat log. Display-only; never
// replayed as state.
type LogEntry struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Category  LogCategory `json:"category"`
	Timestamp time.Time   `json:"timestamp"`
}

// Battle is the full state of one battle instance
type Battle struct {
	ID        string        `json:"id"`
	Phase     BattlePhase   `json:"phase"`
	Outcome   BattleOutcome `json:"outcome,omitempty"`
	Turn      int           `json:"turn"`
	Player    Combatant     `json:"player"`
	Enemy     Combatant     `json:"enemy"`
	Log       []LogEntry    `json:"log"`
	CreatedAt time.Time     `json:"created_at"`
}

// Complete reports whether the battle has reached its terminal phase
func (b *Battle) Complete() bool {
	return b.Phase == PhaseComplete
}
