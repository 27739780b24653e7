package cmd

import (
	"context"
	"testing"

	"repomonc/internal/errors"
)

func TestExecuteHelp(t *testing.T) {
	if err := Execute(context.Background(), []string{"--help"}); err != nil {
		t.Errorf("--help: %v", err)
	}
}

func TestExecuteVersion(t *testing.T) {
	if err := Execute(context.Background(), []string{"--version"}); err != nil {
		t.Errorf("--version: %v", err)
	}
}

func TestExecuteUnknownFlag(t *testing.T) {
	if err := Execute(context.Background(), []string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestExecuteTooManyArgs(t *testing.T) {
	err := Execute(context.Background(), []string{"127.0.0.1:9000", "extra"})
	if err == nil {
		t.Error("expected error for extra positional argument")
	}
}

func TestExecuteRejectsHostname(t *testing.T) {
	err := Execute(context.Background(), []string{"example.com:9000"})
	if err == nil {
		t.Fatal("hostname endpoint accepted")
	}
	if !errors.IsResolve(err) {
		t.Errorf("error %v is not a resolve failure", err)
	}
}

func TestExecuteEnvAddress(t *testing.T) {
	t.Setenv("REPOMONC_ADDR", "not valid at all")
	err := Execute(context.Background(), nil)
	if err == nil {
		t.Fatal("invalid env address accepted")
	}
	if !errors.IsResolve(err) {
		t.Errorf("error %v is not a resolve failure", err)
	}
}
