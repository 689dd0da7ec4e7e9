// Package entities defines the domain types shared across the game:
// characters and their derived stats, the story graph, and battle state.
package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Class is a playable character class
type Class string

// Playable classes
const (
	ClassWarrior  Class = "warrior"
	ClassMage     Class = "mage"
	ClassRogue    Class = "rogue"
	ClassHealer   Class = "healer"
	ClassSentinel Class = "sentinel"
)

// Classes lists every playable class
func Classes() []Class {
	return []Class{ClassWarrior, ClassMage, ClassRogue, ClassHealer, ClassSentinel}
}

// Valid reports whether c is a known class
func (c Class) Valid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassRogue, ClassHealer, ClassSentinel:
		return true
	}
	return false
}

// Pool is a bounded resource such as health or mana.
// Invariant: 0 <= Current <= Max.
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Clamp forces Current back into [0, Max]
func (p *Pool) Clamp() {
	if p.Current < 0 {
		p.Current = 0
	}
	if p.Current > p.Max {
		p.Current = p.Max
	}
}

// Experience tracks progress toward the next level
type Experience struct {
	Current int `json:"current"`
	Next    int `json:"next"`
}

// Attributes are the five combat attributes
type Attributes struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Agility      int `json:"agility"`
	Defense      int `json:"defense"`
	Arcane       int `json:"arcane"`
}

// Get returns the named attribute value, false for unknown names
func (a Attributes) Get(name string) (int, bool) {
	switch name {
	case "strength":
		return a.Strength, true
	case "intelligence":
		return a.Intelligence, true
	case "agility":
		return a.Agility, true
	case "defense":
		return a.Defense, true
	case "arcane":
		return a.Arcane, true
	}
	return 0, false
}

// Stats is the derived stat block of a character. Max values and
// attributes are a pure function of (class, level); current health and
// mana carry mutable combat and narrative state between recomputes.
type Stats struct {
	Health     Pool       `json:"health"`
	Mana       Pool       `json:"mana"`
	Experience Experience `json:"experience"`
	Attributes Attributes `json:"attributes"`
}

// Character is a playable character
type Character struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Class      Class     `json:"class"`
	Level      int       `json:"level"`
	LastPlayed time.Time `json:"last_played"`
	Stats      Stats     `json:"stats"`
}

// GetID implements core.Entity
func (c *Character) GetID() string { return c.ID }

// GetType implements core.Entity
func (c *Character) GetType() string { return "character" }

var _ core.Entity = (*Character)(nil)

// CalculateStats computes the full stat block for a class at a level.
// Pure and deterministic; current pools start at max. The class-keyed
// attribute scales at 2*level+20, the other four at level+10.
func CalculateStats(class Class, level int) Stats {
	healthMax := 20*level + 100
	manaMax := 8*level + 40

	attrs := Attributes{
		Strength:     level + 10,
		Intelligence: level + 10,
		Agility:      level + 10,
		Defense:      level + 10,
		Arcane:       level + 10,
	}

	keyed := 2*level + 20
	switch class {
	case ClassWarrior:
		attrs.Strength = keyed
	case ClassMage:
		attrs.Intelligence = keyed
	case ClassRogue:
		attrs.Agility = keyed
	case ClassSentinel:
		attrs.Defense = keyed
	case ClassHealer:
		attrs.Arcane = keyed
	}

	return Stats{
		Health: Pool{Current: healthMax, Max: healthMax},
		Mana:   Pool{Current: manaMax, Max: manaMax},
		Experience: Experience{
			Current: 500*level - 250,
			Next:    500 * level,
		},
		Attributes: attrs,
	}
}
