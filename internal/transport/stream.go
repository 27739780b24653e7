package transport

import (
	"context"
	"net"
	"time"

	"repomonc/config"
	"repomonc/internal/errors"
	"repomonc/internal/metrics"
	"repomonc/internal/wire"
	"repomonc/message"
	"repomonc/util"
)

// Stream relays messages over a connected TCP session.
//
// Lifecycle: dial, then forward and receive concurrently until the
// remote closes the connection, an I/O failure occurs, or the session
// is closed locally.  Inbound order matches wire order.
type Stream struct {
	Timeout time.Duration // connect timeout (0 = none)
	Codec   *wire.Codec
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// Open dials the remote endpoint and starts both directions.
func (t *Stream) Open(ctx context.Context, remote config.Endpoint, outbound <-chan message.Message) (*Session, error) {
	d := net.Dialer{Timeout: t.Timeout}
	conn, err := d.DialContext(ctx, remote.Network("tcp"), remote.String())
	if err != nil {
		return nil, errors.Wrap(errors.OpDial, remote.String(), err)
	}
	t.Logger.Verbose("connected to %s", conn.RemoteAddr())

	sess := newSession(conn.LocalAddr(), conn.Close)
	go t.forward(sess, conn, outbound)
	go t.receive(ctx, sess, conn)
	return sess, nil
}

// forward drains the handoff channel onto the wire.  An encode failure
// drops that message and continues; a write failure is terminal for
// the whole session and is propagated through the Session rather than
// aborting the process.
func (t *Stream) forward(sess *Session, conn net.Conn, outbound <-chan message.Message) {
	for m := range outbound {
		frame, err := t.Codec.Encode(m)
		if err != nil {
			t.Logger.Error("%v (message dropped)", err)
			t.Metrics.EncodeFailure()
			continue
		}
		if len(frame) == 0 {
			continue
		}
		if _, err := conn.Write(frame); err != nil {
			sess.fail(errors.Wrap(errors.OpWrite, conn.RemoteAddr().String(), err))
			return
		}
		t.Metrics.MessageSent(len(frame))
	}

	// Local input ended: half-close the write side so the remote sees
	// EOF, but keep receiving until it closes its end.
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.CloseWrite() //nolint:errcheck
	}
}

// receive decodes the inbound byte stream frame-by-frame and delivers
// messages in order.  Each read is treated as exactly one frame.
func (t *Stream) receive(ctx context.Context, sess *Session, conn net.Conn) {
	defer sess.finish()

	buf := util.GetBuf()
	defer util.PutBuf(buf)

	for {
		n, err := conn.Read(*buf)
		if n > 0 {
			m, derr := t.Codec.Decode((*buf)[:n])
			switch {
			case derr != nil:
				t.Logger.Error("%v (frame dropped)", derr)
				t.Metrics.DecodeFailure()
			case m != nil:
				if !sess.deliver(ctx, *m) {
					return
				}
				t.Metrics.MessageReceived(n)
			}
		}
		if err != nil {
			if !util.IsHarmless(err) {
				sess.fail(errors.Wrap(errors.OpRead, conn.RemoteAddr().String(), err))
			}
			return
		}
	}
}
