// Package debug implements the GDB Remote Serial Protocol and QEMU Monitor
// Protocol servers that let an external debugger and scripting client
// control an x86 emulator through the hw.Facade interface.
package debug

import (
	"context"
	"fmt"
	"time"

	"xtdbg/emu"
	"xtdbg/emu/log"
	"xtdbg/hw"

	"golang.org/x/sync/errgroup"
)

// pollInterval is how often the background poll loop services the GDB
// transport and the Gate when no real CPU interpreter is driving Poll from
// its own instruction loop. A CPU interpreter embedding this package would
// normally call PollLoop.Poll directly between instructions instead of
// relying on this ticker.
const pollInterval = time.Millisecond

// Server owns one GDB endpoint, one QMP endpoint, and the Gate that
// connects them to the emulator. It replaces the global-singleton shape
// with a handle callers create once and thread through explicitly.
type Server struct {
	Facade hw.Facade

	GDB  *GDBServer
	QMP  *QMPServer
	Gate *Gate
	Poll *PollLoop

	cfg    emu.Config
	cancel context.CancelFunc
	eg     *errgroup.Group
}

func NewServer(f hw.Facade, cfg emu.Config) *Server {
	gate := &Gate{}
	gdb := NewGDBServer(f)
	qmp := NewQMPServer(f, gate)
	return &Server{
		Facade: f,
		GDB:    gdb,
		QMP:    qmp,
		Gate:   gate,
		Poll:   NewPollLoop(f, gdb, gate),
		cfg:    cfg,
	}
}

// Start binds the enabled endpoints and launches the background poll loop.
func (s *Server) Start() error {
	if s.cfg.GDB.Enabled {
		if err := s.GDB.Start(portAddr(s.cfg.GDB.Port)); err != nil {
			return err
		}
	}
	if s.cfg.QMP.Enabled {
		if err := s.QMP.Start(portAddr(s.cfg.QMP.Port)); err != nil {
			s.GDB.Stop()
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	eg, ctx := errgroup.WithContext(ctx)
	s.eg = eg
	eg.Go(func() error {
		s.runPollLoop(ctx)
		return nil
	})

	log.ModDebug.InfoZ("debug server started").
		Bool("gdb", s.cfg.GDB.Enabled).Bool("qmp", s.cfg.QMP.Enabled).End()
	return nil
}

// Stop tears down both endpoints and waits for the poll loop to exit.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	gdbErr := s.GDB.Stop()
	qmpErr := s.QMP.Stop()
	if s.eg != nil {
		s.eg.Wait()
	}
	if gdbErr != nil {
		return gdbErr
	}
	return qmpErr
}

// runPollLoop drives PollLoop.Poll on a ticker standing in for the real
// emulator's instruction loop. A step completes immediately since there is
// no CPU interpreter behind the reference Facade to single-step; a
// continue leaves the target running until a breakpoint check (also not
// implemented by the reference Facade) or another GDB command interrupts
// it.
func (s *Server) runPollLoop(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			switch s.Poll.Poll() {
			case ActionStep:
				s.GDB.NotifyStop(5)
			case ActionContinue:
				// Left running; the reference Facade has no instruction
				// loop to hand control to.
			}
		}
	}
}

func portAddr(port int) string {
	return fmt.Sprintf(":%d", port)
}
