package debug

import (
	"strings"
	"testing"
	"time"

	"xtdbg/hw"
)

func TestQMPSessionCapabilitiesAndStatus(t *testing.T) {
	m := hw.NewMachine(0x10000)
	s := NewQMPSession(m, &Gate{})

	out := s.HandleObject(`{"execute":"qmp_capabilities"}`)
	if !strings.Contains(string(out), `"return":{}`) {
		t.Fatalf("qmp_capabilities reply = %q", out)
	}
	if !s.negotiated {
		t.Fatal("negotiated flag not set after qmp_capabilities")
	}

	out = s.HandleObject(`{"execute":"query-status"}`)
	if !strings.Contains(string(out), `"status":"running"`) {
		t.Fatalf("query-status reply = %q, want status running", out)
	}
}

func TestQMPSessionRelaxedNegotiation(t *testing.T) {
	m := hw.NewMachine(0x10000)
	s := NewQMPSession(m, &Gate{})

	// query-status works even though qmp_capabilities was never sent.
	out := s.HandleObject(`{"execute":"query-status"}`)
	if !strings.Contains(string(out), `"return"`) {
		t.Fatalf("out = %q, want a successful return before negotiation", out)
	}
}

func TestQMPSessionUnknownCommand(t *testing.T) {
	m := hw.NewMachine(0x10000)
	s := NewQMPSession(m, &Gate{})

	out := s.HandleObject(`{"execute":"frobnicate"}`)
	if !strings.Contains(string(out), "CommandNotFound") {
		t.Fatalf("out = %q, want CommandNotFound", out)
	}
}

func TestQMPSessionSendKeySucceeds(t *testing.T) {
	m := hw.NewMachine(0x10000)
	s := NewQMPSession(m, &Gate{})

	out := s.HandleObject(`{"execute":"send-key","arguments":{"keys":[{"type":"qcode","data":"a"}],"hold-time":1}}`)
	if !strings.Contains(string(out), `"return"`) {
		t.Fatalf("send-key reply = %q", out)
	}
}

func TestQMPSessionSendKeyEmptyIsError(t *testing.T) {
	m := hw.NewMachine(0x10000)
	s := NewQMPSession(m, &Gate{})

	out := s.HandleObject(`{"execute":"send-key","arguments":{"keys":[]}}`)
	if !strings.Contains(string(out), "GenericError") {
		t.Fatalf("out = %q, want GenericError for empty keys", out)
	}
}

func TestQMPSessionMemdumpInline(t *testing.T) {
	m := hw.NewMachine(0x10000)
	m.WriteByte(0x10, 0xaa)
	m.WriteByte(0x11, 0xbb)
	s := NewQMPSession(m, &Gate{})

	out := s.HandleObject(`{"execute":"memdump","arguments":{"address":16,"size":2}}`)
	if !strings.Contains(string(out), `"data"`) {
		t.Fatalf("memdump reply = %q, want a data field", out)
	}
}

func TestQMPSessionScreendumpRoundTrip(t *testing.T) {
	m := hw.NewMachine(0x10000)
	gate := &Gate{}
	s := NewQMPSession(m, gate)

	done := make(chan []byte, 1)
	go func() {
		done <- s.HandleObject(`{"execute":"screendump"}`)
	}()

	kind, _, ok := waitForPending(t, gate)
	if !ok || kind != ReqScreenshot {
		t.Fatalf("gate did not receive screenshot request: kind=%v ok=%v", kind, ok)
	}
	// Simulate the poll loop performing the actual capture before
	// acknowledging completion.
	m.TakeScreenshot()
	gate.Complete(nil)

	out := <-done
	if !strings.Contains(string(out), `"data"`) || !strings.Contains(string(out), `"format":"png"`) {
		t.Fatalf("screendump reply = %q, want inline base64 png data", out)
	}
}

func TestQMPSessionScreendumpToFile(t *testing.T) {
	m := hw.NewMachine(0x10000)
	gate := &Gate{}
	s := NewQMPSession(m, gate)
	outPath := t.TempDir() + "/out.png"

	done := make(chan []byte, 1)
	go func() {
		done <- s.HandleObject(`{"execute":"screendump","arguments":{"file":"` + outPath + `"}}`)
	}()

	_, _, ok := waitForPending(t, gate)
	if !ok {
		t.Fatal("gate did not receive screenshot request")
	}
	m.TakeScreenshot()
	gate.Complete(nil)

	out := <-done
	if !strings.Contains(string(out), outPath) {
		t.Fatalf("screendump reply = %q, want file path %q", out, outPath)
	}
}

func TestQMPSessionSavestateRoundTrip(t *testing.T) {
	m := hw.NewMachine(0x10000)
	gate := &Gate{}
	s := NewQMPSession(m, gate)
	path := t.TempDir() + "/state.sav"

	done := make(chan []byte, 1)
	go func() {
		done <- s.HandleObject(`{"execute":"savestate","arguments":{"file":"` + path + `"}}`)
	}()

	kind, arg, ok := waitForPending(t, gate)
	if !ok || kind != ReqSave || arg != path {
		t.Fatalf("gate did not receive save request: kind=%v arg=%q ok=%v", kind, arg, ok)
	}
	m.RequestSave(path)
	done2, err := m.IsComplete()
	if !done2 || err != nil {
		t.Fatalf("machine save did not complete cleanly: done=%v err=%v", done2, err)
	}
	gate.Complete(nil)

	out := <-done
	if !strings.Contains(string(out), path) {
		t.Fatalf("savestate reply = %q, want file path %q", out, path)
	}
}

func TestQMPSessionSystemResetPassesDosOnly(t *testing.T) {
	m := hw.NewMachine(0x10000)
	gate := &Gate{}
	s := NewQMPSession(m, gate)

	out := s.HandleObject(`{"execute":"system_reset","arguments":{"dos_only":true}}`)
	if !strings.Contains(string(out), `"return"`) {
		t.Fatalf("system_reset reply = %q, want success", out)
	}
	kind, arg, ok := gate.Pending()
	if !ok || kind != ReqReset || arg != "1" {
		t.Fatalf("gate.Pending() = %v %q %v, want ReqReset with arg 1", kind, arg, ok)
	}
}

func TestQMPSessionStopIdempotentWhenAlreadyPaused(t *testing.T) {
	m := hw.NewMachine(0x10000)
	m.RequestPause()
	s := NewQMPSession(m, &Gate{})

	out := s.HandleObject(`{"execute":"stop"}`)
	if !strings.Contains(string(out), `"return"`) {
		t.Fatalf("stop reply = %q, want success without touching the gate", out)
	}
}

func waitForPending(t *testing.T, g *Gate) (RequestKind, string, bool) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if kind, arg, ok := g.Pending(); ok {
			return kind, arg, true
		}
		time.Sleep(time.Millisecond)
	}
	return ReqNone, "", false
}
