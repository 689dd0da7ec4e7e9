package entities

import (
	"time"

	"github.com/fractalshard/game-api/internal/errors"
)

// StoryAttribute names one of the five narrative accumulators
type StoryAttribute string

// Story attributes
const (
	AttributeHeroism    StoryAttribute = "heroism"
	AttributeCunning    StoryAttribute = "cunning"
	AttributeMysticism  StoryAttribute = "mysticism"
	AttributeDiplomacy  StoryAttribute = "diplomacy"
	AttributeCorruption StoryAttribute = "corruption"
)

// Valid reports whether a is a known story attribute
func (a StoryAttribute) Valid() bool {
	switch a {
	case AttributeHeroism, AttributeCunning, AttributeMysticism, AttributeDiplomacy, AttributeCorruption:
		return true
	}
	return false
}

// CharacterAttribute maps a story attribute to the character attribute it
// gates on: heroism->strength, cunning->agility, mysticism->arcane,
// diplomacy->intelligence, corruption->defense.
func (a StoryAttribute) CharacterAttribute() string {
	switch a {
	case AttributeHeroism:
		return "strength"
	case AttributeCunning:
		return "agility"
	case AttributeMysticism:
		return "arcane"
	case AttributeDiplomacy:
		return "intelligence"
	case AttributeCorruption:
		return "defense"
	}
	return ""
}

// StoryAttributes are the narrative accumulators, floor-clamped at zero
type StoryAttributes struct {
	Heroism    int `json:"heroism"`
	Cunning    int `json:"cunning"`
	Mysticism  int `json:"mysticism"`
	Diplomacy  int `json:"diplomacy"`
	Corruption int `json:"corruption"`
}

// Get returns the value of the named attribute
func (s StoryAttributes) Get(attr StoryAttribute) int {
	switch attr {
	case AttributeHeroism:
		return s.Heroism
	case AttributeCunning:
		return s.Cunning
	case AttributeMysticism:
		return s.Mysticism
	case AttributeDiplomacy:
		return s.Diplomacy
	case AttributeCorruption:
		return s.Corruption
	}
	return 0
}

// Apply adds amount to the named attribute, clamping the result at zero
func (s *StoryAttributes) Apply(attr StoryAttribute, amount int) {
	set := func(v *int) {
		*v += amount
		if *v < 0 {
			*v = 0
		}
	}
	switch attr {
	case AttributeHeroism:
		set(&s.Heroism)
	case AttributeCunning:
		set(&s.Cunning)
	case AttributeMysticism:
		set(&s.Mysticism)
	case AttributeDiplomacy:
		set(&s.Diplomacy)
	case AttributeCorruption:
		set(&s.Corruption)
	}
}

// AttributeEffect is the authored effect of taking a choice
type AttributeEffect struct {
	Attribute StoryAttribute `json:"attribute" yaml:"attribute"`
	Amount    int            `json:"amount" yaml:"amount"`
}

// ChoiceRequirement gates a choice on a character attribute or an item
type ChoiceRequirement struct {
	Attribute StoryAttribute `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	MinValue  int            `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	Item      string         `json:"item,omitempty" yaml:"item,omitempty"`
}

// StoryChoice is an edge out of a story node. Either Next names another
// node, or Redirect hands control out of the graph entirely.
type StoryChoice struct {
	ID              string             `json:"id" yaml:"id"`
	Text            string             `json:"text" yaml:"text"`
	Next            string             `json:"next,omitempty" yaml:"next,omitempty"`
	Redirect        string             `json:"redirect,omitempty" yaml:"redirect,omitempty"`
	Requires        *ChoiceRequirement `json:"requires,omitempty" yaml:"requires,omitempty"`
	AttributeEffect *AttributeEffect   `json:"attribute_effect,omitempty" yaml:"attribute_effect,omitempty"`
}

// StoryRewards is granted when a node is departed via any choice
type StoryRewards struct {
	Experience int      `json:"experience,omitempty" yaml:"experience,omitempty"`
	Items      []string `json:"items,omitempty" yaml:"items,omitempty"`
	Currency   int      `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// StoryNode is a vertex in the narrative graph: one screen of text plus
// its outgoing choices.
type StoryNode struct {
	ID      string        `json:"id" yaml:"id"`
	Text    string        `json:"text" yaml:"text"`
	Choices []StoryChoice `json:"choices" yaml:"choices"`
	Rewards *StoryRewards `json:"rewards,omitempty" yaml:"rewards,omitempty"`
}

// Choice returns the outgoing choice with the given id
func (n *StoryNode) Choice(id string) (*StoryChoice, bool) {
	for i := range n.Choices {
		if n.Choices[i].ID == id {
			return &n.Choices[i], true
		}
	}
	return nil, false
}

// StoryGraph is the directed graph of story nodes
type StoryGraph struct {
	Root  string
	Nodes map[string]*StoryNode
}

// Node returns the node with the given id
func (g *StoryGraph) Node(id string) (*StoryNode, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// Len returns the number of nodes in the graph
func (g *StoryGraph) Len() int {
	return len(g.Nodes)
}

// Validate checks the graph invariants: the root resolves, every
// non-redirect choice target resolves, and authored attribute names are
// known.
func (g *StoryGraph) Validate() error {
	if _, ok := g.Nodes[g.Root]; !ok {
		return errors.InvalidArgumentf("story root %q does not resolve to a node", g.Root)
	}

	for id, node := range g.Nodes {
		for _, choice := range node.Choices {
			if choice.Redirect == "" {
				if _, ok := g.Nodes[choice.Next]; !ok {
					return errors.InvalidArgumentf(
						"choice %q on node %q targets unknown node %q", choice.ID, id, choice.Next)
				}
			}
			if choice.Requires != nil && choice.Requires.Attribute != "" && !choice.Requires.Attribute.Valid() {
				return errors.InvalidArgumentf(
					"choice %q on node %q requires unknown attribute %q", choice.ID, id, choice.Requires.Attribute)
			}
			if choice.AttributeEffect != nil && !choice.AttributeEffect.Attribute.Valid() {
				return errors.InvalidArgumentf(
					"choice %q on node %q affects unknown attribute %q", choice.ID, id, choice.AttributeEffect.Attribute)
			}
		}
	}

	return nil
}

// StoryHistoryEntry records one visit in the append-only session history
type StoryHistoryEntry struct {
	NodeID    string    `json:"node_id"`
	ChoiceID  string    `json:"choice_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
