// Package cmd wires up the CLI flags and dispatches to the relay core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"repomonc/config"
	"repomonc/relay"
	"repomonc/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X repomonc/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs a relay session.
func Execute(ctx context.Context, args []string) error {
	cfg := &config.Config{Addr: config.DefaultAddr}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("repomonc", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.UDP, "udp", "u", cfg.UDP, "Relay over UDP instead of TCP")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Connect timeout in seconds (0 = none)")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.CountVarP(&cfg.Quiet, "quiet", "q", "Decrease verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("repomonc %s\n", version)
		return nil
	}

	if timeoutSec > 0 {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	switch rest := fs.Args(); len(rest) {
	case 0: // default or env-provided address
	case 1:
		cfg.Addr = rest[0]
	default:
		return fmt.Errorf("too many arguments (expected a single ip:port)")
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build and run ────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbosity())
	defer logger.Sync()

	return relay.New(cfg, logger).Run(ctx)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `repomonc – repomon console client v%s

Relays repomon messages between stdin/stdout and a remote monitor.

Usage:
  repomonc [options] [ip:port]    (default %s)

Options:
`, version, config.DefaultAddr)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  repomonc 127.0.0.1:9000             Relay over TCP
  repomonc -u 127.0.0.1:9000          Relay over UDP
  echo "ping" | repomonc -v           Pipe data to the default endpoint
`)
}
