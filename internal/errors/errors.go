// Package errors provides domain-specific error types for repomonc.
//
// These types carry structured context (operation, address) that lets
// the caller distinguish address-resolution failures from connection
// failures from transport I/O failures, which the process boundary
// maps to distinct exit codes.
package errors

import (
	"errors"
	"fmt"
)

// ── Operation names ──────────────────────────────────────────────────

const (
	OpResolve = "resolve" // endpoint parsing, before any I/O
	OpDial    = "dial"    // stream connect / datagram bind
	OpRead    = "read"    // inbound transport I/O
	OpWrite   = "write"   // outbound transport I/O
	OpEncode  = "encode"  // message → frame
	OpDecode  = "decode"  // frame → message
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.
type NetworkError struct {
	Op   string // operation: "resolve", "dial", "read", "write"
	Addr string // network address involved
	Err  error  // underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// CodecError represents a wire encode or decode failure.  Codec
// failures are never fatal: the affected message is dropped and the
// failure is reported on the diagnostic channel.
type CodecError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s message: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError for the given operation and address.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{Op: op, Addr: addr, Err: err}
}

// WrapCodec creates a CodecError.
func WrapCodec(op string, err error) *CodecError {
	return &CodecError{Op: op, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsResolve reports whether err is an address-resolution failure.
func IsResolve(err error) bool { return isOp(err, OpResolve) }

// IsConnect reports whether err is a connection-establishment failure.
func IsConnect(err error) bool { return isOp(err, OpDial) }

// IsIO reports whether err is a transport read or write failure.
func IsIO(err error) bool { return isOp(err, OpRead) || isOp(err, OpWrite) }

func isOp(err error, op string) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Op == op
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use repomonc/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
