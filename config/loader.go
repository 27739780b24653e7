package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the REPOMONC_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("REPOMONC_ADDR"); v != "" {
		cfg.Addr = v
	}
	if envBool("REPOMONC_UDP") {
		cfg.UDP = true
	}
	if v := envInt("REPOMONC_TIMEOUT"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v := envInt("REPOMONC_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if v := envInt("REPOMONC_QUIET"); v > 0 {
		cfg.Quiet = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
