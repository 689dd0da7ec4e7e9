// Package content loads the authored story graph and enemy templates from
// YAML. A default campaign ships embedded in the binary; a config override
// can point at external files with the same schema.
package content

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
)

//go:embed story.yaml
var defaultStoryYAML []byte

//go:embed enemies.yaml
var defaultEnemiesYAML []byte

type storyFile struct {
	Root  string                `yaml:"root"`
	Nodes []*entities.StoryNode `yaml:"nodes"`
}

// EnemyTemplate is an authored enemy definition
type EnemyTemplate struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Level   int      `yaml:"level"`
	HP      int      `yaml:"hp"`
	MP      int      `yaml:"mp"`
	Effects []effect `yaml:"effects"`
}

type effect struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Duration int     `yaml:"duration"`
	Modifier float64 `yaml:"modifier"`
}

type enemiesFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// Combatant builds a battle combatant from the template. Pools start full;
// authored opening effects get IDs from the supplied generator.
func (t EnemyTemplate) Combatant(genID func() string) entities.Combatant {
	c := entities.Combatant{
		ID:    t.ID,
		Name:  t.Name,
		Kind:  "enemy",
		Level: t.Level,
		HP:    entities.Pool{Current: t.HP, Max: t.HP},
		MP:    entities.Pool{Current: t.MP, Max: t.MP},
	}
	for _, e := range t.Effects {
		c.Effects = append(c.Effects, entities.StatusEffect{
			ID:       genID(),
			Name:     e.Name,
			Kind:     entities.EffectKind(e.Kind),
			Duration: e.Duration,
			Modifier: e.Modifier,
		})
	}
	return c
}

// LoadStory parses and validates a story graph from YAML. Untagged legacy
// choices get their attribute effect derived from the choice-id keyword
// convention (see ClassifyChoiceID).
func LoadStory(data []byte) (*entities.StoryGraph, error) {
	var file storyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse story content")
	}

	graph := &entities.StoryGraph{
		Root:  file.Root,
		Nodes: make(map[string]*entities.StoryNode, len(file.Nodes)),
	}
	for _, node := range file.Nodes {
		if _, dup := graph.Nodes[node.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate story node id %q", node.ID)
		}
		for i := range node.Choices {
			choice := &node.Choices[i]
			if choice.AttributeEffect == nil {
				if eff, ok := ClassifyChoiceID(choice.ID); ok {
					choice.AttributeEffect = &eff
				}
			}
		}
		graph.Nodes[node.ID] = node
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

// DefaultStory loads the embedded campaign graph
func DefaultStory() (*entities.StoryGraph, error) {
	return LoadStory(defaultStoryYAML)
}

// LoadStoryFile loads a story graph from an external YAML file
func LoadStoryFile(path string) (*entities.StoryGraph, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read story file %s", path)
	}
	return LoadStory(data)
}

// LoadEnemies parses enemy templates from YAML, keyed by template id
func LoadEnemies(data []byte) (map[string]EnemyTemplate, error) {
	var file enemiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse enemy content")
	}

	templates := make(map[string]EnemyTemplate, len(file.Enemies))
	for _, t := range file.Enemies {
		if t.ID == "" {
			return nil, errors.InvalidArgument("enemy template missing id")
		}
		if _, dup := templates[t.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate enemy template id %q", t.ID)
		}
		templates[t.ID] = t
	}
	return templates, nil
}

// DefaultEnemies loads the embedded enemy templates
func DefaultEnemies() (map[string]EnemyTemplate, error) {
	return LoadEnemies(defaultEnemiesYAML)
}

// ClassifyChoiceID derives a story attribute effect from a choice id using
// the legacy keyword convention. First match wins; ids matching no keyword
// carry no effect.
func ClassifyChoiceID(id string) (entities.AttributeEffect, bool) {
	categories := []struct {
		keywords  []string
		attribute entities.StoryAttribute
	}{
		{[]string{"negotiate", "question"}, entities.AttributeDiplomacy},
		{[]string{"fight", "battle"}, entities.AttributeHeroism},
		{[]string{"study", "research"}, entities.AttributeMysticism},
		{[]string{"retreat", "strategic"}, entities.AttributeCunning},
	}

	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if strings.Contains(id, kw) {
				return entities.AttributeEffect{Attribute: cat.attribute, Amount: 1}, true
			}
		}
	}
	return entities.AttributeEffect{}, false
}
