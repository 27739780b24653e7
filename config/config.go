// Package config defines the runtime configuration for repomonc and
// provides endpoint parsing helpers.
package config

import (
	"fmt"
	"net/netip"
	"time"

	"repomonc/internal/errors"
)

// Config holds every tuneable for a single repomonc session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Addr    string        // remote endpoint as "ip:port"
	UDP     bool          // relay over UDP instead of TCP
	Timeout time.Duration // connect timeout (0 = none)

	// ── Output ───────────────────────────────────────────────────────
	Verbose int // -v count
	Quiet   int // -q count
}

// Verbosity folds the -v and -q counts into a single logger level.
// Baseline 1 (normal): warnings and info.  Each -v raises it, each -q
// lowers it.
func (c *Config) Verbosity() int {
	return 1 + c.Verbose - c.Quiet
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("remote address is required")
	}
	if _, err := ParseEndpoint(c.Addr); err != nil {
		return err
	}
	return nil
}

// ── Endpoint ─────────────────────────────────────────────────────────

// Endpoint is a resolved remote peer address: a numeric IP, a port,
// and the address family implied by the IP.  Immutable once parsed.
type Endpoint struct {
	addrPort netip.AddrPort
}

// ParseEndpoint parses a strict numeric "ip:port" string.  Hostnames
// are rejected; the remote peer identity must be an exact socket
// address so the datagram transport can filter on it.
func ParseEndpoint(s string) (Endpoint, error) {
	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		return Endpoint{}, errors.Wrap(errors.OpResolve, s, err)
	}
	return Endpoint{addrPort: netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())}, nil
}

// AddrPort returns the endpoint as a netip.AddrPort.
func (e Endpoint) AddrPort() netip.AddrPort { return e.addrPort }

// IsIPv4 reports whether the endpoint's address family is IPv4.
func (e Endpoint) IsIPv4() bool { return e.addrPort.Addr().Is4() }

// Network returns the network string for the endpoint's family,
// e.g. "tcp4"/"tcp6" or "udp4"/"udp6".
func (e Endpoint) Network(base string) string {
	if e.IsIPv4() {
		return base + "4"
	}
	return base + "6"
}

// String returns the canonical "ip:port" form.
func (e Endpoint) String() string { return e.addrPort.String() }
