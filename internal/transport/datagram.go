package transport

import (
	"context"
	"net"
	"net/netip"

	"repomonc/config"
	"repomonc/internal/errors"
	"repomonc/internal/metrics"
	"repomonc/internal/wire"
	"repomonc/message"
	"repomonc/util"
)

// Datagram relays messages over UDP.  Delivery keeps the transport's
// native semantics: unordered, unacknowledged, no retransmission.
//
// The socket binds to an ephemeral local port in the remote's address
// family.  Inbound traffic could come from anywhere, so every datagram
// is checked against the configured remote peer; foreign sources are
// discarded before decoding, without logging.
type Datagram struct {
	Codec   *wire.Codec
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// Open binds the local socket and starts both directions.  The inbound
// sequence is unbounded: it ends only when the session is closed.
func (t *Datagram) Open(ctx context.Context, remote config.Endpoint, outbound <-chan message.Message) (*Session, error) {
	conn, err := net.ListenUDP(remote.Network("udp"), nil)
	if err != nil {
		return nil, errors.Wrap(errors.OpDial, remote.String(), err)
	}
	t.Logger.Verbose("bound %s, remote peer %s", conn.LocalAddr(), remote)

	sess := newSession(conn.LocalAddr(), conn.Close)
	go t.forward(sess, conn, remote, outbound)
	go t.receive(ctx, sess, conn, remote)
	return sess, nil
}

// forward sends each outbound message to the remote peer as one
// datagram.  Encode failures drop the message; a send failure is
// terminal for the session.  When local input ends the socket stays
// open; the inbound direction runs until the session is closed.
func (t *Datagram) forward(sess *Session, conn *net.UDPConn, remote config.Endpoint, outbound <-chan message.Message) {
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
		if _, err := conn.WriteToUDPAddrPort(frame, remote.AddrPort()); err != nil {
			sess.fail(errors.Wrap(errors.OpWrite, remote.String(), err))
			return
		}
		t.Metrics.MessageSent(len(frame))
	}
}

// receive accepts datagrams from the configured remote peer only,
// decodes each as one frame, and delivers the messages.  Datagrams
// from any other source are dropped silently.
func (t *Datagram) receive(ctx context.Context, sess *Session, conn *net.UDPConn, remote config.Endpoint) {
	defer sess.finish()

	buf := util.GetBuf()
	defer util.PutBuf(buf)

	for {
		n, src, err := conn.ReadFromUDPAddrPort(*buf)
		if n > 0 && sameEndpoint(src, remote.AddrPort()) {
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
		} else if n > 0 {
			t.Metrics.DatagramFiltered()
		}
		if err != nil {
			if !util.IsHarmless(err) {
				sess.fail(errors.Wrap(errors.OpRead, remote.String(), err))
			}
			return
		}
	}
}

// sameEndpoint compares a datagram source with the configured remote,
// unmapping any IPv4-in-IPv6 form the kernel may report.
func sameEndpoint(src, remote netip.AddrPort) bool {
	return netip.AddrPortFrom(src.Addr().Unmap(), src.Port()) == remote
}
