// Package relay implements the forwarding driver: the top-level loop
// that bridges console input to a single remote peer and prints every
// message received back.
package relay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"repomonc/config"
	"repomonc/internal/bridge"
	"repomonc/internal/metrics"
	"repomonc/internal/transport"
	"repomonc/internal/wire"
	"repomonc/util"
)

// Relay orchestrates a single session.  Stdin and Stdout are fields so
// tests can substitute buffers for the real console.
type Relay struct {
	Config  *config.Config
	Logger  *util.Logger
	Stdin   io.Reader
	Stdout  io.Writer
	Metrics *metrics.Collector
}

// New returns a ready-to-run Relay bound to the real console.
func New(cfg *config.Config, logger *util.Logger) *Relay {
	return &Relay{
		Config:  cfg,
		Logger:  logger,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Metrics: metrics.New(),
	}
}

// Run resolves the endpoint, selects the transport, and forwards in
// both directions until the inbound sequence ends or ctx is cancelled.
//
// Termination: a clean remote close returns nil; a transport I/O
// failure in either direction closes both directions and returns the
// error; cancellation closes the session in an orderly way and
// returns nil.
func (r *Relay) Run(ctx context.Context) error {
	remote, err := config.ParseEndpoint(r.Config.Addr)
	if err != nil {
		return err
	}

	codec, err := wire.New()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outbound := bridge.Start(ctx, r.Stdin, r.Logger)

	var tr transport.Transport
	if r.Config.UDP {
		tr = &transport.Datagram{Codec: codec, Logger: r.Logger, Metrics: r.Metrics}
	} else {
		tr = &transport.Stream{Timeout: r.Config.Timeout, Codec: codec, Logger: r.Logger, Metrics: r.Metrics}
	}
	r.Logger.Info("relaying to %s (%s)", remote, networkName(r.Config.UDP))

	sess, err := tr.Open(ctx, remote, outbound)
	if err != nil {
		return err
	}
	defer sess.Close()
	defer r.logSummary()

	out := bufio.NewWriter(r.Stdout)
	for {
		select {
		case <-ctx.Done():
			r.Logger.Verbose("shutting down")
			return nil
		case m, ok := <-sess.Messages():
			if !ok {
				return sess.Err()
			}
			fmt.Fprintln(out, "New Message")
			fmt.Fprintln(out, m.Display())
			if err := out.Flush(); err != nil {
				return err
			}
		}
	}
}

func (r *Relay) logSummary() {
	r.Logger.Verbose("session stats: %s", r.Metrics.Snapshot())
}

func networkName(udp bool) string {
	if udp {
		return "udp"
	}
	return "tcp"
}
