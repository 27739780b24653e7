package util

import (
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	if got := FormatAddr("127.0.0.1", 8080); got != "127.0.0.1:8080" {
		t.Errorf("FormatAddr = %q", got)
	}
	if got := FormatAddr("::1", 9000); got != "[::1]:9000" {
		t.Errorf("FormatAddr v6 = %q", got)
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Errorf("port %d out of range", port)
	}

	// The port should be bindable right after.
	l, err := net.Listen("tcp", FormatAddr("127.0.0.1", port))
	if err != nil {
		t.Fatalf("freshly found port not bindable: %v", err)
	}
	l.Close()
}

func TestIsHarmless(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{io.EOF, true},
		{net.ErrClosed, true},
		{io.ErrClosedPipe, true},
		{&net.OpError{Op: "read", Err: net.ErrClosed}, true},
		{errors.New("connection reset by peer"), false},
		{fmt.Errorf("wrapped: %w", io.EOF), true},
	}
	for _, tc := range cases {
		if got := IsHarmless(tc.err); got != tc.want {
			t.Errorf("IsHarmless(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
