package debug

import (
	"os"
	"strings"
	"testing"
	"time"

	"xtdbg/hw"
)

func TestPollLoopServicesScreenshotRequest(t *testing.T) {
	m := hw.NewMachine(0x1000)
	gate := &Gate{}
	gdb := NewGDBServer(m)
	pl := NewPollLoop(m, gdb, gate)

	if !gate.Submit(ReqScreenshot, "") {
		t.Fatal("submit failed on idle gate")
	}

	// Screenshot completion is polled via IsScreenshotPending across calls,
	// the same as save/load via IsComplete, rather than assumed done after
	// the tick that issues it.
	for i := 0; i < 10 && !isGateComplete(gate); i++ {
		pl.Poll()
	}

	if err := gate.Await(0); err != nil {
		t.Fatalf("Await returned error after PollLoop serviced the request: %v", err)
	}
	if path := m.LastScreenshotPath(); path == "" {
		t.Fatal("expected TakeScreenshot to have produced a file by the time the gate completed")
	} else {
		os.Remove(path)
	}
}

func TestPollLoopServicesSaveAcrossCalls(t *testing.T) {
	m := hw.NewMachine(0x1000)
	gate := &Gate{}
	gdb := NewGDBServer(m)
	pl := NewPollLoop(m, gdb, gate)

	tmp := t.TempDir() + "/state.bin"
	if !gate.Submit(ReqSave, tmp) {
		t.Fatal("submit failed on idle gate")
	}

	for i := 0; i < 10 && !isGateComplete(gate); i++ {
		pl.Poll()
	}

	if err := gate.Await(0); err != nil {
		t.Fatalf("save request did not complete cleanly: %v", err)
	}
}

// TestQMPScreendumpDrivenByPollLoop exercises the full path a real client
// takes: QMPSession.handleScreendump submits to the Gate and awaits it,
// while PollLoop is the only thing servicing that Gate, polling
// IsScreenshotPending across calls the same way it polls IsComplete for
// save/load.
func TestQMPScreendumpDrivenByPollLoop(t *testing.T) {
	m := hw.NewMachine(0x1000)
	gate := &Gate{}
	gdb := NewGDBServer(m)
	pl := NewPollLoop(m, gdb, gate)
	sess := NewQMPSession(m, gate)

	done := make(chan []byte, 1)
	go func() {
		done <- sess.HandleObject(`{"execute":"screendump"}`)
	}()

	// Unlike the two tests above, the Gate.Submit here happens on the
	// goroutine above rather than before polling starts, so give the
	// scheduler real wall-clock time to land it rather than a fixed
	// iteration count.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !isGateComplete(gate) {
		pl.Poll()
		time.Sleep(time.Millisecond)
	}

	select {
	case out := <-done:
		if !strings.Contains(string(out), `"format":"png"`) {
			t.Fatalf("screendump reply = %q, want a png format field", out)
		}
	case <-time.After(time.Second):
		t.Fatal("PollLoop never drove the screenshot request to completion")
	}
}

func isGateComplete(g *Gate) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status == gateComplete
}
