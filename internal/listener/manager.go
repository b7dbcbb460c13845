package listener

import (
	"context"
	"io"
)

// SessionRunner is the session layer's entry point for an accepted
// connection. It blocks for the life of the session.
type SessionRunner interface {
	AcceptConnection(ctx context.Context, conn io.ReadWriter)
}

// ConnectionManager hands accepted connections from any listener to the
// session layer.
type ConnectionManager struct {
	sessions SessionRunner
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	m.sessions.AcceptConnection(ctx, conn)
}
