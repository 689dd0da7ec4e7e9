package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fractalshard/game-api/internal/entities"
)

func graphWith(nodes ...*entities.StoryNode) *entities.StoryGraph {
	g := &entities.StoryGraph{Root: nodes[0].ID, Nodes: map[string]*entities.StoryNode{}}
	for _, n := range nodes {
		g.Nodes[n.ID] = n
	}
	return g
}

func TestStoryGraph_Validate(t *testing.T) {
	g := graphWith(
		&entities.StoryNode{ID: "intro", Choices: []entities.StoryChoice{
			{ID: "go", Next: "end"},
			{ID: "leave", Redirect: "/battle"},
		}},
		&entities.StoryNode{ID: "end"},
	)

	assert.NoError(t, g.Validate())
}

func TestStoryGraph_Validate_MissingRoot(t *testing.T) {
	g := &entities.StoryGraph{Root: "nope", Nodes: map[string]*entities.StoryNode{}}

	assert.Error(t, g.Validate())
}

func TestStoryGraph_Validate_DanglingChoice(t *testing.T) {
	g := graphWith(
		&entities.StoryNode{ID: "intro", Choices: []entities.StoryChoice{
			{ID: "go", Next: "missing"},
		}},
	)

	err := g.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestStoryGraph_Validate_UnknownAttribute(t *testing.T) {
	g := graphWith(
		&entities.StoryNode{ID: "intro", Choices: []entities.StoryChoice{
			{ID: "go", Redirect: "/x", AttributeEffect: &entities.AttributeEffect{Attribute: "luck", Amount: 1}},
		}},
	)

	assert.Error(t, g.Validate())
}

func TestStoryAttributes_Apply_FloorClamp(t *testing.T) {
	attrs := entities.StoryAttributes{Cunning: 1}

	attrs.Apply(entities.AttributeCunning, -3)

	assert.Equal(t, 0, attrs.Cunning)
}

func TestStoryAttributes_Apply_OnlyTargetChanges(t *testing.T) {
	var attrs entities.StoryAttributes

	attrs.Apply(entities.AttributeDiplomacy, 1)

	assert.Equal(t, entities.StoryAttributes{Diplomacy: 1}, attrs)
}

func TestStoryAttribute_CharacterAttribute(t *testing.T) {
	cases := map[entities.StoryAttribute]string{
		entities.AttributeHeroism:    "strength",
		entities.AttributeCunning:    "agility",
		entities.AttributeMysticism:  "arcane",
		entities.AttributeDiplomacy:  "intelligence",
		entities.AttributeCorruption: "defense",
	}

	for story, char := range cases {
		assert.Equal(t, char, story.CharacterAttribute())
	}
}
