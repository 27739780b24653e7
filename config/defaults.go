package config

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultAddr is the remote endpoint used when none is given.
	DefaultAddr = "127.0.0.1:8080"

	// ChunkSize is the fixed read size for the local input source.
	// One chunk becomes one relayed message.
	ChunkSize = 1024
)
