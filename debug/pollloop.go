package debug

import (
	"xtdbg/hw"
)

// PollLoop ties the GDB endpoint's poll-driven transport and the Gate's
// async request queue into the single call the emulator's main loop makes
// between instructions (or between batches of instructions while running
// free). QMP runs its own goroutine per client and routes its main-thread
// operations through the Gate, so it needs no poll call of its own.
type PollLoop struct {
	Facade hw.Facade
	GDB    *GDBServer
	Gate   *Gate

	gateWork struct {
		active   bool
		kind     RequestKind
		awaiting bool // work issued, waiting on the matching Facade poll method
	}
}

func NewPollLoop(f hw.Facade, gdb *GDBServer, gate *Gate) *PollLoop {
	return &PollLoop{Facade: f, GDB: gdb, Gate: gate}
}

// Poll services one step of any in-flight Gate request without blocking,
// then drives the GDB transport once. It returns the action the emulator
// should take before the next Poll call.
func (p *PollLoop) Poll() PendingAction {
	p.serviceGate()
	return p.GDB.PollOnce()
}

// serviceGate advances Gate work by at most one non-blocking step per call.
// Save, load and screenshot all span multiple Poll calls, tracked via
// gateWork, so a disk/GPU-backed Facade implementation never stalls the
// emulator thread inside a single call; the reference Machine happens to
// finish them synchronously, so in practice they complete on the very next
// call.
func (p *PollLoop) serviceGate() {
	if p.gateWork.active && p.gateWork.awaiting {
		done, err := p.pollGateWork()
		if !done {
			return
		}
		p.gateWork.active = false
		p.Gate.Complete(err)
		return
	}

	if !p.gateWork.active {
		kind, arg, ok := p.Gate.Pending()
		if !ok {
			return
		}
		if awaiting := p.startGateWork(kind, arg); awaiting {
			p.gateWork.active = true
			p.gateWork.kind = kind
			p.gateWork.awaiting = true
			return
		}
		p.Gate.Complete(nil)
	}
}

// pollGateWork checks whether the in-flight save/load/screenshot has
// finished, using whichever Facade query matches the kind that was started.
func (p *PollLoop) pollGateWork() (done bool, err error) {
	switch p.gateWork.kind {
	case ReqSave, ReqLoad:
		return p.Facade.IsComplete()
	case ReqScreenshot:
		return !p.Facade.IsScreenshotPending(), nil
	}
	return true, nil
}

// startGateWork issues the Facade call for kind and reports whether it must
// be awaited asynchronously (save/load via IsComplete, screenshot via
// IsScreenshotPending) or completes synchronously (everything else).
func (p *PollLoop) startGateWork(kind RequestKind, arg string) (awaiting bool) {
	switch kind {
	case ReqSave:
		p.Facade.RequestSave(arg)
		return true
	case ReqLoad:
		p.Facade.RequestLoad(arg)
		return true
	case ReqScreenshot:
		p.Facade.TakeScreenshot()
		return true
	case ReqPause:
		p.Facade.RequestPause()
	case ReqResume:
		p.Facade.RequestResume()
	case ReqReset:
		p.Facade.RequestReset(arg == "1")
	}
	return false
}
