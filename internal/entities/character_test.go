package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fractalshard/game-api/internal/entities"
)

func TestCalculateStats_Deterministic(t *testing.T) {
	first := entities.CalculateStats(entities.ClassMage, 24)
	second := entities.CalculateStats(entities.ClassMage, 24)

	assert.Equal(t, first, second)
}

func TestCalculateStats_Level1(t *testing.T) {
	stats := entities.CalculateStats(entities.ClassWarrior, 1)

	assert.Equal(t, entities.Pool{Current: 120, Max: 120}, stats.Health)
	assert.Equal(t, entities.Pool{Current: 48, Max: 48}, stats.Mana)
	assert.Equal(t, entities.Experience{Current: 250, Next: 500}, stats.Experience)
	assert.Equal(t, 22, stats.Attributes.Strength, "warrior keys strength")
	assert.Equal(t, 11, stats.Attributes.Intelligence)
	assert.Equal(t, 11, stats.Attributes.Agility)
	assert.Equal(t, 11, stats.Attributes.Defense)
	assert.Equal(t, 11, stats.Attributes.Arcane)
}

func TestCalculateStats_ClassKeyedAttribute(t *testing.T) {
	cases := map[entities.Class]func(entities.Attributes) int{
		entities.ClassWarrior:  func(a entities.Attributes) int { return a.Strength },
		entities.ClassMage:     func(a entities.Attributes) int { return a.Intelligence },
		entities.ClassRogue:    func(a entities.Attributes) int { return a.Agility },
		entities.ClassSentinel: func(a entities.Attributes) int { return a.Defense },
		entities.ClassHealer:   func(a entities.Attributes) int { return a.Arcane },
	}

	for class, keyed := range cases {
		stats := entities.CalculateStats(class, 10)
		assert.Equal(t, 40, keyed(stats.Attributes), "class %s", class)
	}
}

func TestCalculateStats_StrictlyIncreasingInLevel(t *testing.T) {
	prev := entities.CalculateStats(entities.ClassRogue, 1)
	for level := 2; level <= 50; level++ {
		next := entities.CalculateStats(entities.ClassRogue, level)

		assert.Greater(t, next.Health.Max, prev.Health.Max, "health at level %d", level)
		assert.Greater(t, next.Mana.Max, prev.Mana.Max, "mana at level %d", level)
		assert.Greater(t, next.Experience.Next, prev.Experience.Next, "threshold at level %d", level)
		prev = next
	}
}

func TestPool_Clamp(t *testing.T) {
	p := entities.Pool{Current: -10, Max: 100}
	p.Clamp()
	assert.Equal(t, 0, p.Current)

	p = entities.Pool{Current: 150, Max: 100}
	p.Clamp()
	assert.Equal(t, 100, p.Current)
}

func TestClass_Valid(t *testing.T) {
	for _, class := range entities.Classes() {
		assert.True(t, class.Valid())
	}
	assert.False(t, entities.Class("necromancer").Valid())
	assert.False(t, entities.Class("").Valid())
}
