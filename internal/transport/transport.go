// Package transport relays framed Messages between the local handoff
// channel and a single remote endpoint.  A transport handles the "how"
// of message movement (a connected TCP stream or a filtered UDP
// socket) independent of where messages come from or go to.
//
// Exactly two implementations exist, selected by configuration; the
// interface is a closed contract, not a plugin point.
package transport

import (
	"context"
	"net"
	"sync"

	"repomonc/config"
	"repomonc/message"
)

// Transport opens a relay session: given the remote endpoint and the
// outbound Message sequence, it produces the inbound Message sequence.
type Transport interface {
	// Open establishes the session and starts forwarding outbound
	// messages.  A setup failure (dial, bind) is returned immediately
	// and nothing is started.
	Open(ctx context.Context, remote config.Endpoint, outbound <-chan message.Message) (*Session, error)
}

// Session is one live relay session.  Messages() yields inbound
// messages in arrival order until the session ends; Err() then reports
// the terminal error, nil for a clean end (remote close or local
// Close).
type Session struct {
	msgs  chan message.Message
	local net.Addr

	mu  sync.Mutex
	err error

	closeOnce sync.Once
	closeFn   func() error
}

func newSession(local net.Addr, closeFn func() error) *Session {
	return &Session{
		msgs:    make(chan message.Message),
		local:   local,
		closeFn: closeFn,
	}
}

// LocalAddr returns the session's local socket address.
func (s *Session) LocalAddr() net.Addr { return s.local }

// Messages returns the inbound message sequence.  The channel closes
// when the remote ends the session, an unrecoverable I/O failure
// occurs, or Close is called.
func (s *Session) Messages() <-chan message.Message { return s.msgs }

// Err returns the terminal session error.  Only meaningful after
// Messages() has closed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears down the session's socket, unblocking both directions.
// Safe to call more than once and concurrently with delivery.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() { err = s.closeFn() })
	return err
}

// fail records the first terminal error and closes the socket so the
// receive loop unblocks.  Both the forward and receive paths report
// failures here; whichever arrives first wins.
func (s *Session) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	_ = s.Close()
}

// deliver hands one inbound message to the consumer, preserving
// arrival order.  Returns false once ctx is cancelled.
func (s *Session) deliver(ctx context.Context, m message.Message) bool {
	select {
	case s.msgs <- m:
		return true
	case <-ctx.Done():
		return false
	}
}

// finish closes the inbound channel.  Called exactly once, by the
// receive loop, when the session ends.
func (s *Session) finish() {
	close(s.msgs)
}
