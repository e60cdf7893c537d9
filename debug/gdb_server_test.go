package debug

import (
	"net"
	"testing"
	"time"

	"xtdbg/hw"
)

// TestGDBServerRejectsInteractiveDebuggerConflict exercises tryAccept's
// mutual-exclusion check against Machine's on-screen interactive debugger,
// driven through the flag SetInteractiveDebuggerActive exists specifically
// to toggle in tests.
func TestGDBServerRejectsInteractiveDebuggerConflict(t *testing.T) {
	m := hw.NewMachine(0x1000)
	srv := NewGDBServer(m)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close()
	addr := ln.Addr().String()

	if err := srv.Start(addr); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	first, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial first: %v", err)
	}
	defer first.Close()
	srv.tryAccept()
	if !srv.HasClient() {
		t.Fatal("first client should have been accepted")
	}

	m.SetInteractiveDebuggerActive(true)

	second, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial second: %v", err)
	}
	defer second.Close()
	srv.tryAccept()

	second.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 16)
	n, err := second.Read(buf)
	if err != nil {
		t.Fatalf("read from rejected client: %v", err)
	}
	if string(buf[:n]) != "$E99#b2" {
		t.Fatalf("rejected client got %q, want %q", buf[:n], "$E99#b2")
	}

	if n2, err2 := second.Read(buf); n2 != 0 || err2 == nil {
		t.Fatalf("rejected connection should be closed after the reject packet, got n=%d err=%v", n2, err2)
	}

	if !srv.HasClient() {
		t.Fatal("existing client should be untouched by the interactive-debugger rejection")
	}
}
