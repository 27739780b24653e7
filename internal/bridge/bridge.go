// Package bridge converts the blocking local input source into a
// concurrency-safe, back-pressured sequence of Messages.
//
// The local source only supports blocking reads, so the read loop runs
// on its own goroutine and hands each chunk off through an unbuffered
// channel.  The zero-capacity rendezvous is the system's only
// backpressure mechanism: when the transport's outbound path stalls,
// the send blocks, which blocks the read loop, which stops consuming
// local input.
package bridge

import (
	"context"
	"io"

	"repomonc/config"
	"repomonc/message"
	"repomonc/util"
)

// Start launches the read loop on a dedicated goroutine and returns
// the handoff channel.  One non-empty chunk of up to
// config.ChunkSize bytes becomes one Message.  The channel closes on
// end-of-input or any read error; the loop never retries.
//
// Cancelling ctx releases a send that no consumer will ever complete,
// so a failed session cannot strand the goroutine mid-handoff.
func Start(ctx context.Context, r io.Reader, logger *util.Logger) <-chan message.Message {
	ch := make(chan message.Message)

	go func() {
		defer close(ch)
		buf := make([]byte, config.ChunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				m := message.NewInfo(string(buf[:n]))
				select {
				case ch <- m:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					logger.Error("input read: %v", err)
				} else {
					logger.Debug("input source reached end-of-input")
				}
				return
			}
		}
	}()

	return ch
}
