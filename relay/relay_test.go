package relay

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"repomonc/config"
	"repomonc/internal/errors"
	"repomonc/internal/metrics"
	"repomonc/internal/wire"
	"repomonc/message"
	"repomonc/util"
)

func testLogger() *util.Logger {
	return util.NewLoggerTo(io.Discard, 0, false)
}

func testCodec(t *testing.T) *wire.Codec {
	t.Helper()
	c, err := wire.New()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// syncBuffer is a bytes.Buffer safe for concurrent writes from the
// relay goroutine and reads from the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestRunStreamSession drives a full TCP session: the remote sends two
// frames and closes; the driver must print both in the fixed output
// pattern and terminate cleanly.
func TestRunStreamSession(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	codec := testCodec(t)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		msgs := []message.Message{
			{Category: message.Ahead, Repo: "repomon", Branch: "master", Count: 2},
			{Category: message.UpToDate, Repo: "repomon", Branch: "dev"},
		}
		for _, m := range msgs {
			frame, _ := codec.Encode(m)
			conn.Write(frame)
			time.Sleep(30 * time.Millisecond)
		}
		conn.Close()
	}()

	out := &syncBuffer{}
	r := &Relay{
		Config:  &config.Config{Addr: ln.Addr().String()},
		Logger:  testLogger(),
		Stdin:   strings.NewReader(""),
		Stdout:  out,
		Metrics: metrics.New(),
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "New Message\n" +
		"repomon/master: 2 commits ahead\n" +
		"New Message\n" +
		"repomon/dev: up-to-date\n"
	if got := out.String(); got != want {
		t.Errorf("output:\n%q\nwant:\n%q", got, want)
	}

	if n := r.Metrics.MessagesReceived(); n != 2 {
		t.Errorf("messages received = %d, want 2", n)
	}
}

// TestRunSendsInputUpstream verifies console input reaches the remote
// as exactly one frame per chunk.
func TestRunSendsInputUpstream(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	codec := testCodec(t)

	got := make(chan string, 4)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				if m, derr := codec.Decode(buf[:n]); derr == nil && m != nil {
					got <- m.Text
				}
			}
			if err != nil {
				conn.Close()
				close(got)
				return
			}
		}
	}()

	r := &Relay{
		Config:  &config.Config{Addr: ln.Addr().String()},
		Logger:  testLogger(),
		Stdin:   strings.NewReader("hello\n"),
		Stdout:  &syncBuffer{},
		Metrics: metrics.New(),
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var texts []string
	for text := range got {
		texts = append(texts, text)
	}
	if len(texts) != 1 || texts[0] != "hello\n" {
		t.Errorf("remote saw %v, want exactly one %q", texts, "hello\n")
	}
}

// TestRunResolveError verifies a malformed endpoint fails before any
// I/O with a resolve-kind error.
func TestRunResolveError(t *testing.T) {
	r := &Relay{
		Config: &config.Config{Addr: "not-an-endpoint"},
		Logger: testLogger(),
		Stdin:  strings.NewReader(""),
		Stdout: &syncBuffer{},
	}
	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected resolve error")
	}
	if !errors.IsResolve(err) {
		t.Errorf("error %v is not a resolve failure", err)
	}
}

// TestRunConnectError verifies a refused stream connect surfaces to
// the caller.
func TestRunConnectError(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	r := &Relay{
		Config: &config.Config{
			Addr:    util.FormatAddr("127.0.0.1", port),
			Timeout: 2 * time.Second,
		},
		Logger: testLogger(),
		Stdin:  strings.NewReader(""),
		Stdout: &syncBuffer{},
	}
	err = r.Run(context.Background())
	if err == nil {
		t.Fatal("expected connect error")
	}
	if !errors.IsConnect(err) {
		t.Errorf("error %v is not a connect failure", err)
	}
}

// TestRunDatagramSession relays over UDP: the peer learns the
// session's address from the first outbound datagram, replies with a
// frame, and the driver prints it; cancellation then ends the run
// cleanly (the datagram inbound sequence is otherwise unbounded).
func TestRunDatagramSession(t *testing.T) {
	peer, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer peer.Close()
	codec := testCodec(t)

	go func() {
		buf := make([]byte, 4096)
		peer.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, src, err := peer.ReadFromUDP(buf)
		if err != nil {
			return
		}
		frame, _ := codec.Encode(message.NewInfo("pong"))
		peer.WriteToUDP(frame, src)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	r := &Relay{
		Config:  &config.Config{Addr: peer.LocalAddr().String(), UDP: true},
		Logger:  testLogger(),
		Stdin:   strings.NewReader("ping\n"),
		Stdout:  out,
		Metrics: metrics.New(),
	}

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	want := "New Message\npong\n"
	deadline := time.Now().Add(5 * time.Second)
	for out.String() != want {
		if time.Now().After(deadline) {
			t.Fatalf("output %q never reached %q", out.String(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
