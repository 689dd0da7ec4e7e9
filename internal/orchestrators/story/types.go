package story

//go:generate mockgen -destination=mock/mock_service.go -package=storymock github.com/fractalshard/game-api/internal/orchestrators/story Service

import (
	"context"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/repositories/storysession"
)

// Service defines the narrative engine operations
type Service interface {
	// StartSession opens a session at the graph root, optionally bound
	// to a character for gating and reward grants
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// GetNode returns the current node view with the typed-reveal state
	GetNode(ctx context.Context, input *GetNodeInput) (*GetNodeOutput, error)

	// HandleChoice takes a choice on the current node
	// Returns errors.FailedPrecondition while the reveal is in progress
	// or when the choice's requirement is unmet
	HandleChoice(ctx context.Context, input *HandleChoiceInput) (*HandleChoiceOutput, error)

	// SkipTyping completes the reveal immediately
	SkipTyping(ctx context.Context, input *SkipTypingInput) (*SkipTypingOutput, error)

	// ResetSession returns the session to the graph root with fresh
	// attributes and history
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)

	// GetProgress reports distinct nodes visited over total nodes
	GetProgress(ctx context.Context, input *GetProgressInput) (*GetProgressOutput, error)
}

// ChoiceView is a choice as presented to the player
type ChoiceView struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Selectable bool   `json:"selectable"`
}

// NodeView is the current node as presented to the player, including
// the typed-reveal state computed from the session clock.
type NodeView struct {
	ID           string                   `json:"id"`
	Text         string                   `json:"text"`
	RevealedText string                   `json:"revealed_text"`
	IsTyping     bool                     `json:"is_typing"`
	Choices      []ChoiceView             `json:"choices"`
	Attributes   entities.StoryAttributes `json:"attributes"`
}

// StartSessionInput defines the request for starting a session.
// CharacterID is optional; unbound sessions cannot pass gated choices
// or collect experience.
type StartSessionInput struct {
	CharacterID string
}

// StartSessionOutput defines the response for starting a session
type StartSessionOutput struct {
	Session *storysession.StorySession
	Node    *NodeView
}

// GetNodeInput defines the request for reading the current node
type GetNodeInput struct {
	SessionID string
}

// GetNodeOutput defines the response for reading the current node
type GetNodeOutput struct {
	Node *NodeView
}

// HandleChoiceInput defines the request for taking a choice
type HandleChoiceInput struct {
	SessionID string
	ChoiceID  string
}

// HandleChoiceOutput defines the response for taking a choice.
// Redirect is set when the choice hands control out of the graph; the
// caller navigates, the engine never does.
type HandleChoiceOutput struct {
	Node     *NodeView
	Redirect string
}

// SkipTypingInput defines the request for skipping the reveal
type SkipTypingInput struct {
	SessionID string
}

// SkipTypingOutput defines the response for skipping the reveal
type SkipTypingOutput struct {
	Node *NodeView
}

// ResetSessionInput defines the request for resetting a session
type ResetSessionInput struct {
	SessionID string
}

// ResetSessionOutput defines the response for resetting a session
type ResetSessionOutput struct {
	Node *NodeView
}

// GetProgressInput defines the request for reading progress
type GetProgressInput struct {
	SessionID string
}

// GetProgressOutput defines the response for reading progress
type GetProgressOutput struct {
	Visited int
	Total   int
	Ratio   float64
}
