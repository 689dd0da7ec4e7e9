// Package story implements the narrative engine orchestrator
package story

import (
	"context"
	"log/slog"
	"time"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	"github.com/fractalshard/game-api/internal/pkg/clock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	sessionrepo "github.com/fractalshard/game-api/internal/repositories/storysession"
)

const defaultTypingInterval = 30 * time.Millisecond

// Config holds the dependencies for the story orchestrator
type Config struct {
	SessionRepo      sessionrepo.Repository
	CharacterService characterorch.Service
	Graph            *entities.StoryGraph
	IDGenerator      idgen.Generator
	Clock            clock.Clock

	// TypingInterval is the reveal speed, one character per interval.
	// Defaults to 30ms.
	TypingInterval time.Duration

	// SessionTTL is passed through to the repository; zero uses the
	// repository default.
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if cfg.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if cfg.Graph == nil {
		vb.RequiredField("Graph")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements the story Service interface
type Orchestrator struct {
	sessionRepo    sessionrepo.Repository
	characterSvc   characterorch.Service
	graph          *entities.StoryGraph
	idGen          idgen.Generator
	clock          clock.Clock
	typingInterval time.Duration
	sessionTTL     time.Duration
}

// New creates a new story orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := cfg.Graph.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid story graph")
	}

	interval := cfg.TypingInterval
	if interval == 0 {
		interval = defaultTypingInterval
	}

	return &Orchestrator{
		sessionRepo:    cfg.SessionRepo,
		characterSvc:   cfg.CharacterService,
		graph:          cfg.Graph,
		idGen:          cfg.IDGenerator,
		clock:          cfg.Clock,
		typingInterval: interval,
		sessionTTL:     cfg.SessionTTL,
	}, nil
}

var _ Service = (*Orchestrator)(nil)

// StartSession opens a session at the graph root
func (o *Orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.CharacterID != "" {
		if _, err := o.characterSvc.GetCharacter(ctx, &characterorch.GetCharacterInput{
			CharacterID: input.CharacterID,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to bind character %s", input.CharacterID)
		}
	}

	now := o.clock.Now()
	session := &sessionrepo.StorySession{
		ID:          o.idGen.Generate(),
		CharacterID: input.CharacterID,
		NodeID:      o.graph.Root,
		EnteredAt:   now,
		History: []entities.StoryHistoryEntry{
			{NodeID: o.graph.Root, Timestamp: now},
		},
	}

	out, err := o.sessionRepo.Create(ctx, sessionrepo.CreateInput{
		Session: session,
		TTL:     o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	slog.InfoContext(ctx, "story session started",
		"session_id", out.Session.ID,
		"character_id", input.CharacterID,
		"root", o.graph.Root)

	view, err := o.nodeView(ctx, out.Session)
	if err != nil {
		return nil, err
	}

	return &StartSessionOutput{Session: out.Session, Node: view}, nil
}

// GetNode returns the current node view
func (o *Orchestrator) GetNode(ctx context.Context, input *GetNodeInput) (*GetNodeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	view, err := o.nodeView(ctx, session)
	if err != nil {
		return nil, err
	}

	return &GetNodeOutput{Node: view}, nil
}

// HandleChoice takes a choice on the current node. The steps run in a
// fixed order: reveal gate, requirement gate, history, attribute effect,
// reward grant, then the move or redirect.
func (o *Orchestrator) HandleChoice(ctx context.Context, input *HandleChoiceInput) (*HandleChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ChoiceID == "" {
		return nil, errors.InvalidArgument("choice ID is required")
	}

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	node, ok := o.graph.Node(session.NodeID)
	if !ok {
		return nil, errors.Internalf("session %s sits on unknown node %s", session.ID, session.NodeID)
	}

	if o.isTyping(session, node) {
		return nil, errors.FailedPrecondition("text is still revealing; skip or wait before choosing")
	}

	choice, ok := node.Choice(input.ChoiceID)
	if !ok {
		return nil, errors.NotFoundf("choice %s not found on node %s", input.ChoiceID, node.ID)
	}

	selectable, err := o.selectable(ctx, session, choice)
	if err != nil {
		return nil, err
	}
	if !selectable {
		return nil, errors.FailedPreconditionf("choice %s requirement is not met", choice.ID)
	}

	now := o.clock.Now()
	session.History = append(session.History, entities.StoryHistoryEntry{
		NodeID:    node.ID,
		ChoiceID:  choice.ID,
		Timestamp: now,
	})

	if choice.AttributeEffect != nil {
		session.Attributes.Apply(choice.AttributeEffect.Attribute, choice.AttributeEffect.Amount)
	}

	o.grantRewards(ctx, session, node)

	redirect := ""
	if choice.Redirect != "" {
		redirect = choice.Redirect
	} else if _, ok := o.graph.Node(choice.Next); ok {
		session.NodeID = choice.Next
		session.EnteredAt = now
		session.RevealSkipped = false
	} else {
		// Stay in place on an unresolvable target.
		slog.WarnContext(ctx, "choice target does not resolve, staying on node",
			"session_id", session.ID,
			"node_id", node.ID,
			"choice_id", choice.ID,
			"target", choice.Next)
	}

	if _, err := o.sessionRepo.Update(ctx, sessionrepo.UpdateInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	view, err := o.nodeView(ctx, session)
	if err != nil {
		return nil, err
	}

	return &HandleChoiceOutput{Node: view, Redirect: redirect}, nil
}

// SkipTyping completes the reveal immediately
func (o *Orchestrator) SkipTyping(ctx context.Context, input *SkipTypingInput) (*SkipTypingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.RevealSkipped = true
	if _, err := o.sessionRepo.Update(ctx, sessionrepo.UpdateInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	view, err := o.nodeView(ctx, session)
	if err != nil {
		return nil, err
	}

	return &SkipTypingOutput{Node: view}, nil
}

// ResetSession returns the session to the graph root
func (o *Orchestrator) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	session.NodeID = o.graph.Root
	session.EnteredAt = now
	session.RevealSkipped = false
	session.Attributes = entities.StoryAttributes{}
	session.Items = nil
	session.Currency = 0
	session.History = []entities.StoryHistoryEntry{
		{NodeID: o.graph.Root, Timestamp: now},
	}

	if _, err := o.sessionRepo.Update(ctx, sessionrepo.UpdateInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	slog.InfoContext(ctx, "story session reset", "session_id", session.ID)

	view, err := o.nodeView(ctx, session)
	if err != nil {
		return nil, err
	}

	return &ResetSessionOutput{Node: view}, nil
}

// GetProgress reports distinct nodes visited over total nodes
func (o *Orchestrator) GetProgress(ctx context.Context, input *GetProgressInput) (*GetProgressOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	visited := session.VisitedCount()
	total := o.graph.Len()

	ratio := 0.0
	if total > 0 {
		ratio = float64(visited) / float64(total)
	}

	return &GetProgressOutput{
		Visited: visited,
		Total:   total,
		Ratio:   ratio,
	}, nil
}

func (o *Orchestrator) loadSession(ctx context.Context, sessionID string) (*sessionrepo.StorySession, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, sessionrepo.GetInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

// revealedRunes returns how many characters of the node text are visible
func (o *Orchestrator) revealedRunes(session *sessionrepo.StorySession, node *entities.StoryNode) int {
	runes := []rune(node.Text)
	if session.RevealSkipped {
		return len(runes)
	}

	elapsed := o.clock.Now().Sub(session.EnteredAt)
	if elapsed < 0 {
		return 0
	}

	visible := int(elapsed / o.typingInterval)
	if visible > len(runes) {
		visible = len(runes)
	}
	return visible
}

func (o *Orchestrator) isTyping(session *sessionrepo.StorySession, node *entities.StoryNode) bool {
	return o.revealedRunes(session, node) < len([]rune(node.Text))
}

// selectable evaluates a choice requirement against the session and
// its bound character. Unbound sessions fail every attribute gate.
func (o *Orchestrator) selectable(ctx context.Context, session *sessionrepo.StorySession, choice *entities.StoryChoice) (bool, error) {
	req := choice.Requires
	if req == nil {
		return true, nil
	}

	if req.Item != "" {
		return session.HasItem(req.Item), nil
	}

	if req.Attribute != "" {
		if session.CharacterID == "" {
			return false, nil
		}

		out, err := o.characterSvc.GetCharacter(ctx, &characterorch.GetCharacterInput{
			CharacterID: session.CharacterID,
		})
		if err != nil {
			return false, errors.Wrapf(err, "failed to load character %s for gating", session.CharacterID)
		}

		value, ok := out.Character.Stats.Attributes.Get(req.Attribute.CharacterAttribute())
		if !ok {
			return false, nil
		}
		return value >= req.MinValue, nil
	}

	return true, nil
}

// grantRewards applies the departed node's rewards to the session and,
// when a character is bound, routes experience through the character
// service. Reward failures are logged, not fatal.
func (o *Orchestrator) grantRewards(ctx context.Context, session *sessionrepo.StorySession, node *entities.StoryNode) {
	rewards := node.Rewards
	if rewards == nil {
		return
	}

	session.Items = append(session.Items, rewards.Items...)
	session.Currency += rewards.Currency

	if rewards.Experience > 0 && session.CharacterID != "" {
		out, err := o.characterSvc.GrantExperience(ctx, &characterorch.GrantExperienceInput{
			CharacterID: session.CharacterID,
			Amount:      rewards.Experience,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to grant story experience",
				"session_id", session.ID,
				"character_id", session.CharacterID,
				"amount", rewards.Experience,
				"error", err)
			return
		}
		if out.LevelsGained > 0 {
			slog.InfoContext(ctx, "story reward leveled character up",
				"character_id", session.CharacterID,
				"levels_gained", out.LevelsGained)
		}
	}
}

func (o *Orchestrator) nodeView(ctx context.Context, session *sessionrepo.StorySession) (*NodeView, error) {
	node, ok := o.graph.Node(session.NodeID)
	if !ok {
		return nil, errors.Internalf("session %s sits on unknown node %s", session.ID, session.NodeID)
	}

	runes := []rune(node.Text)
	visible := o.revealedRunes(session, node)

	choices := make([]ChoiceView, 0, len(node.Choices))
	for i := range node.Choices {
		selectable, err := o.selectable(ctx, session, &node.Choices[i])
		if err != nil {
			return nil, err
		}
		choices = append(choices, ChoiceView{
			ID:         node.Choices[i].ID,
			Text:       node.Choices[i].Text,
			Selectable: selectable,
		})
	}

	return &NodeView{
		ID:           node.ID,
		Text:         node.Text,
		RevealedText: string(runes[:visible]),
		IsTyping:     visible < len(runes),
		Choices:      choices,
		Attributes:   session.Attributes,
	}, nil
}
