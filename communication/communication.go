package communication

import (
	"context"
	"errors"
)

var (
	ErrPeerClosed   = errors.New("peer closed the connection")
	ErrNotOurTurn   = errors.New("not our turn")
	ErrNotTheirTurn = errors.New("not their turn")
	ErrDesync       = errors.New("peer state diverged")
)

// Communicator carries committed actions between two game instances.
type Communicator interface {
	Send(ctx context.Context, rec ActionRecord) error
	Receive(ctx context.Context) (ActionRecord, error)
	Close() error
}

const (
	msgAction = "action"
	msgPing   = "ping"
)

// Envelope is one message on the wire.
type Envelope struct {
	Type   string        `json:"type"`
	Seq    int           `json:"seq"`
	Action *ActionRecord `json:"action,omitempty"`
}
