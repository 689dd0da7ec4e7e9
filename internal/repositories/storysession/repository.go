// Package storysession provides repository interface and types for narrative
// play sessions
package storysession

import (
	"context"
	"time"

	"github.com/fractalshard/game-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=storysessionmock github.com/fractalshard/game-api/internal/repositories/storysession Repository

// StorySession is the persistent state of one walk through the story graph
type StorySession struct {
	// Unique session identifier
	ID string

	// Character bound to this session, empty when playing unbound
	CharacterID string

	// Node the session currently sits on
	NodeID string

	// When the current node was entered; drives the typed-reveal clock
	EnteredAt time.Time

	// Whether the reveal for the current node was skipped
	RevealSkipped bool

	// Accumulated narrative attributes
	Attributes entities.StoryAttributes

	// Items and currency collected from node rewards
	Items    []string
	Currency int

	// Append-only record of nodes visited and choices taken
	History []entities.StoryHistoryEntry

	// When this session was created
	CreatedAt time.Time

	// When this session expires
	ExpiresAt time.Time
}

// HasItem reports whether the session has collected the named item.
func (s *StorySession) HasItem(item string) bool {
	for _, have := range s.Items {
		if have == item {
			return true
		}
	}
	return false
}

// VisitedCount returns the number of distinct nodes recorded in the history.
func (s *StorySession) VisitedCount() int {
	seen := make(map[string]struct{}, len(s.History))
	for _, entry := range s.History {
		seen[entry.NodeID] = struct{}{}
	}
	return len(seen)
}

// Repository defines the interface for story session persistence
type Repository interface {
	// Create stores a new session with a TTL
	// Returns errors.AlreadyExists if the session ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	// Returns errors.NotFound if the session doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing session, preserving its remaining TTL
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput contains parameters for creating a story session
type CreateInput struct {
	Session *StorySession
	TTL     time.Duration // How long the session should live
}

// CreateOutput contains the result of creating a story session
type CreateOutput struct {
	Session *StorySession
}

// GetInput contains parameters for retrieving a story session
type GetInput struct {
	SessionID string
}

// GetOutput contains the result of retrieving a story session
type GetOutput struct {
	Session *StorySession
}

// UpdateInput contains parameters for updating a story session
type UpdateInput struct {
	Session *StorySession
}

// UpdateOutput contains the result of updating a story session
type UpdateOutput struct {
	Session *StorySession
}

// DeleteInput contains parameters for deleting a story session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput contains the result of deleting a story session
type DeleteOutput struct{}
