// Package metrics provides lightweight, lock-free counters for
// tracking runtime statistics of a relay session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a relay session.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	messagesSent      atomic.Int64
	messagesReceived  atomic.Int64
	bytesOut          atomic.Int64
	bytesIn           atomic.Int64
	encodeFailures    atomic.Int64
	decodeFailures    atomic.Int64
	datagramsFiltered atomic.Int64

	mu        sync.RWMutex
	startTime time.Time
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Outbound ─────────────────────────────────────────────────────────

// MessageSent records one message written to the wire as n frame bytes.
func (c *Collector) MessageSent(n int) {
	if c == nil {
		return
	}
	c.messagesSent.Add(1)
	c.bytesOut.Add(int64(n))
}

// EncodeFailure records a dropped outbound message.
func (c *Collector) EncodeFailure() {
	if c == nil {
		return
	}
	c.encodeFailures.Add(1)
}

// ── Inbound ──────────────────────────────────────────────────────────

// MessageReceived records one decoded inbound message of n frame bytes.
func (c *Collector) MessageReceived(n int) {
	if c == nil {
		return
	}
	c.messagesReceived.Add(1)
	c.bytesIn.Add(int64(n))
}

// DecodeFailure records a dropped malformed frame.
func (c *Collector) DecodeFailure() {
	if c == nil {
		return
	}
	c.decodeFailures.Add(1)
}

// DatagramFiltered records an inbound datagram discarded because its
// source was not the configured remote peer.
func (c *Collector) DatagramFiltered() {
	if c == nil {
		return
	}
	c.datagramsFiltered.Add(1)
}

// ── Accessors ────────────────────────────────────────────────────────

// MessagesSent returns the outbound message count.
func (c *Collector) MessagesSent() int64 {
	if c == nil {
		return 0
	}
	return c.messagesSent.Load()
}

// MessagesReceived returns the inbound message count.
func (c *Collector) MessagesReceived() int64 {
	if c == nil {
		return 0
	}
	return c.messagesReceived.Load()
}

// DecodeFailures returns the count of dropped malformed frames.
func (c *Collector) DecodeFailures() int64 {
	if c == nil {
		return 0
	}
	return c.decodeFailures.Load()
}

// DatagramsFiltered returns the count of discarded foreign datagrams.
func (c *Collector) DatagramsFiltered() int64 {
	if c == nil {
		return 0
	}
	return c.datagramsFiltered.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	MessagesSent      int64         `json:"messages_sent"`
	MessagesReceived  int64         `json:"messages_received"`
	BytesOut          int64         `json:"bytes_out"`
	BytesIn           int64         `json:"bytes_in"`
	EncodeFailures    int64         `json:"encode_failures"`
	DecodeFailures    int64         `json:"decode_failures"`
	DatagramsFiltered int64         `json:"datagrams_filtered"`
	Uptime            time.Duration `json:"uptime"`
}

// Snapshot returns a consistent view of the current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	start := c.startTime
	c.mu.RUnlock()

	return Snapshot{
		MessagesSent:      c.messagesSent.Load(),
		MessagesReceived:  c.messagesReceived.Load(),
		BytesOut:          c.bytesOut.Load(),
		BytesIn:           c.bytesIn.Load(),
		EncodeFailures:    c.encodeFailures.Load(),
		DecodeFailures:    c.decodeFailures.Load(),
		DatagramsFiltered: c.datagramsFiltered.Load(),
		Uptime:            time.Since(start),
	}
}

// String renders the snapshot as single-line JSON for logging.
func (s Snapshot) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}
