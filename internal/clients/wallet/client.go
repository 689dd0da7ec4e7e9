// Package wallet defines the wallet capability used by the outer shell.
// The game never depends on wallet state; connect and disconnect failures
// are surfaced through a Notifier and never reach game logic.
package wallet

//go:generate mockgen -destination=mock/mock_client.go -package=walletmock github.com/fractalshard/game-api/internal/clients/wallet Client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fractalshard/game-api/internal/errors"
)

// Status is the wallet connection state
type Status struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

// Client is the wallet handshake surface
type Client interface {
	// Connect performs the wallet handshake
	Connect(ctx context.Context) (*Status, error)

	// Disconnect drops the wallet connection
	Disconnect(ctx context.Context) error

	// Status reports the current connection state
	Status(ctx context.Context) (*Status, error)
}

// Notification is a user-facing toast. Variant selects the presentation
// ("default" or "destructive").
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"`
}

// Notifier receives user-facing notifications, fire-and-forget
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// SlogNotifier writes notifications to the structured log
type SlogNotifier struct{}

// Notify implements Notifier
func (s *SlogNotifier) Notify(ctx context.Context, n Notification) {
	slog.InfoContext(ctx, "notification",
		"title", n.Title,
		"description", n.Description,
		"variant", n.Variant)
}

// Stub is an in-process stand-in for a browser-extension wallet.
type Stub struct {
	mu        sync.Mutex
	connected bool
	address   string

	// FailConnect forces Connect to fail, for exercising the notifier path
	FailConnect bool
}

// NewStub creates a stub wallet that reports the given address once
// connected
func NewStub(address string) *Stub {
	return &Stub{address: address}
}

var _ Client = (*Stub)(nil)

// Connect implements Client
func (s *Stub) Connect(_ context.Context) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailConnect {
		return nil, errors.Unavailable("wallet extension did not respond")
	}

	s.connected = true
	return &Status{Connected: true, Address: s.address}, nil
}

// Disconnect implements Client
func (s *Stub) Disconnect(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	return nil
}

// Status implements Client
func (s *Stub) Status(_ context.Context) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &Status{Connected: s.connected}
	if s.connected {
		st.Address = s.address
	}
	return st, nil
}
