package debug

import (
	"fmt"
	"sync"
	"time"

	"xtdbg/emu/log"
)

// RequestKind identifies the operation submitted to a Gate.
//
//go:generate stringer -type=RequestKind
type RequestKind int

const (
	ReqNone RequestKind = iota
	ReqSave
	ReqLoad
	ReqScreenshot
	ReqPause
	ReqResume
	ReqReset
)

type gateStatus int

const (
	gateIdle gateStatus = iota
	gatePending
	gateComplete
)

// Gate is the single-slot request/response rendezvous between a QMP
// session (producer) and the emulator's main-thread poll loop (consumer),
// used for operations that must run on the emulator main thread: save,
// load, screenshot, pause, resume, reset.
type Gate struct {
	mu     sync.Mutex
	status gateStatus
	kind   RequestKind
	arg    string
	errMsg string
}

// Submit stores a new request if the gate is idle. It returns false if a
// request is already pending, per §4.6's at-most-one-concurrent-op rule.
func (g *Gate) Submit(kind RequestKind, arg string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == gatePending {
		return false
	}
	g.status = gatePending
	g.kind = kind
	g.arg = arg
	g.errMsg = ""
	return true
}

// Pending reports the next request to service, if any, without consuming
// it.
func (g *Gate) Pending() (kind RequestKind, arg string, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != gatePending {
		return ReqNone, "", false
	}
	return g.kind, g.arg, true
}

// Complete transitions a pending request to COMPLETE, recording err (nil on
// success). It is a no-op if there is no pending request.
func (g *Gate) Complete(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != gatePending {
		return
	}
	if err != nil {
		g.errMsg = err.Error()
	}
	g.status = gateComplete
}

// Await polls for completion until timeout, then transitions COMPLETE back
// to IDLE and returns the recorded error. On timeout it returns a
// GenericError without touching the gate's state (the request may still
// complete later and is then silently ignored).
func (g *Gate) Await(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		g.mu.Lock()
		if g.status == gateComplete {
			errMsg := g.errMsg
			g.status = gateIdle
			g.kind = ReqNone
			g.arg = ""
			g.errMsg = ""
			g.mu.Unlock()
			if errMsg != "" {
				return genericErrorf("%s", errMsg)
			}
			return nil
		}
		kind := g.kind
		g.mu.Unlock()

		if time.Now().After(deadline) {
			log.ModDebug.WarnZ("gate request timed out").Stringer("kind", kind).Duration("timeout", timeout).End()
			return genericErrorf("timed out waiting for request to complete")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (g *Gate) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("Gate{status=%d kind=%s}", g.status, g.kind)
}
