package debug

import (
	"net"

	"xtdbg/emu/log"
	"xtdbg/hw"
)

// interactiveDebuggerRejectPacket is the literal reply the original source
// sends a connecting GDB client while the on-screen interactive debugger is
// active: "$E99#b2". It is reproduced byte-for-byte rather than recomputed
// from Encode("E99"), per the decision recorded in DESIGN.md to preserve
// it verbatim.
var interactiveDebuggerRejectPacket = []byte("$E99#b2")

// GDBServer owns the GDB RSP TCP listener and, at most, one accepted
// client's session. It is driven by PollOnce, called from the Debug Poll
// Loop between instruction ticks.
type GDBServer struct {
	Facade hw.Facade

	ln     net.Listener
	client net.Conn
	sess   *GDBSession
}

func NewGDBServer(f hw.Facade) *GDBServer {
	return &GDBServer{Facade: f}
}

// Start binds the listener. The socket is put in non-blocking accept mode
// by PollOnce's use of SetDeadline rather than a platform-specific flag.
func (s *GDBServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	log.ModGDB.InfoZ("GDB server listening").String("addr", addr).End()
	return nil
}

// Stop closes the listener and any accepted client, unblocking any pending
// accept/recv.
func (s *GDBServer) Stop() error {
	if s.client != nil {
		s.client.Close()
		s.client = nil
		s.sess = nil
	}
	if s.ln != nil {
		err := s.ln.Close()
		s.ln = nil
		return err
	}
	return nil
}

func (s *GDBServer) HasClient() bool { return s.client != nil }

// tryAccept accepts at most one pending connection. If the interactive
// on-screen debugger is active, the new connection is rejected with the
// literal E99 packet and closed without touching any existing client.
func (s *GDBServer) tryAccept() {
	tcpLn, ok := s.ln.(*net.TCPListener)
	if !ok {
		return
	}
	tcpLn.SetDeadline(deadlineNow())
	conn, err := tcpLn.Accept()
	if err != nil {
		return
	}

	if s.Facade.IsInteractiveDebuggerActive() {
		conn.Write(interactiveDebuggerRejectPacket)
		conn.Close()
		return
	}

	if s.client != nil {
		conn.Close()
		return
	}

	log.ModGDB.InfoZ("GDB client connected").String("addr", conn.RemoteAddr().String()).End()
	s.client = conn
	s.sess = NewGDBSession(s.Facade)
}

// PollOnce implements one iteration of §4.5's Debug Poll Loop for the GDB
// endpoint: accept, drain, dispatch, and act on any pending step/continue.
// It returns the action the emulator should perform, if any.
func (s *GDBServer) PollOnce() PendingAction {
	if s.ln == nil {
		return ActionNone
	}
	if s.client == nil {
		s.tryAccept()
		return ActionNone
	}

	s.client.SetReadDeadline(deadlineNow())
	buf := make([]byte, 4096)
	n, err := s.client.Read(buf)
	if n > 0 {
		s.sess.Feed(buf[:n])
	}
	if err != nil && !isTimeout(err) {
		s.teardownClient()
		return ActionNone
	}

	out := s.sess.Poll()
	if len(out) > 0 {
		s.client.Write(out)
	}

	if s.sess.Detached {
		s.teardownClient()
		return ActionNone
	}

	if s.sess.CancelRequested && s.sess.State == Running {
		s.sess.CancelRequested = false
		s.NotifyStop(5)
		return ActionNone
	}

	if s.sess.Pending != ActionNone {
		action := s.sess.Pending
		s.sess.Pending = ActionNone
		s.sess.State = Running
		return action
	}
	return ActionNone
}

// NotifyStop is called by the emulator once execution halts (step done,
// breakpoint hit, or Ctrl-C interrupt) after PollOnce returned a non-NONE
// action, emitting exactly one stop reply.
func (s *GDBServer) NotifyStop(signal int) {
	if s.client == nil || s.sess == nil {
		return
	}
	s.client.Write(s.sess.SendStopReply(signal))
}

func (s *GDBServer) teardownClient() {
	if s.client != nil {
		s.client.Close()
	}
	s.client = nil
	s.sess = nil
}
