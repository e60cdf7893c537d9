package debug

import (
	"strconv"
	"strings"

	"xtdbg/emu/log"
	"xtdbg/hw"
)

// ExecutionState is the GDB session's view of the emulated CPU.
//
//go:generate stringer -type=ExecutionState
type ExecutionState int

const (
	StoppedIdle ExecutionState = iota
	Running
	StoppedPendingReply
)

// PendingAction is set by command dispatch and consumed by the Debug Poll
// Loop, which advances the emulator accordingly.
//
//go:generate stringer -type=PendingAction
type PendingAction int

const (
	ActionNone PendingAction = iota
	ActionStep
	ActionContinue
)

// GDBSession is the GDB RSP protocol state machine for one accepted client:
// handshake, command dispatch, register/memory handlers, breakpoint table
// and the step/continue interlock. It has no socket of its own; GDBServer
// feeds it bytes and writes back whatever Poll returns.
type GDBSession struct {
	Facade      hw.Facade
	Breakpoints Breakpoints
	State       ExecutionState
	Pending     PendingAction
	Detached    bool

	// CancelRequested is set when a 0x03 interrupt arrives while State is
	// Running. It carries no reply of its own; GDBServer.PollOnce consumes
	// it and drives the actual halt that emits the single S05.
	CancelRequested bool

	framer Framer
}

func NewGDBSession(f hw.Facade) *GDBSession {
	return &GDBSession{Facade: f, State: StoppedIdle}
}

// Feed appends newly-received bytes from the client socket.
func (s *GDBSession) Feed(p []byte) {
	s.framer.Feed(p)
}

// Poll dispatches every complete frame currently buffered and returns the
// bytes (acks plus replies) to write back to the client.
func (s *GDBSession) Poll() []byte {
	var out []byte
	for {
		before := len(s.framer.buf)
		payload, ok := s.framer.Extract()
		out = append(out, s.framer.TakeOutput()...)
		if ok {
			if reply, hasReply := s.dispatch(payload); hasReply {
				out = append(out, Encode(reply)...)
			}
			continue
		}
		if len(s.framer.buf) == before {
			break
		}
	}
	return out
}

// SendStopReply is called by the Debug Poll Loop exactly once per
// RUNNING -> STOPPED transition (step completion, breakpoint hit, or
// Ctrl-C interrupt).
func (s *GDBSession) SendStopReply(signal int) []byte {
	s.State = StoppedIdle
	return Encode("S" + hex2(uint8(signal)))
}

func (s *GDBSession) dispatch(payload string) (reply string, hasReply bool) {
	switch {
	case payload == Interrupt:
		if s.State != Running {
			return "S05", true
		}
		// Already running: this must halt at the next instruction boundary
		// and the halt is what emits S05, not the interrupt byte itself.
		s.CancelRequested = true
		return "", false

	case payload == "QStartNoAckMode":
		s.framer.NoAck = true
		return "OK", true

	case payload == "vMustReplyEmpty":
		return "", true

	case payload == "?":
		return "S05", true

	case strings.HasPrefix(payload, "qSupported"):
		return "PacketSize=3fff;swbreak+;hwbreak+;vContSupported+;QStartNoAckMode+", true

	case payload == "qfThreadInfo":
		return "m1", true

	case payload == "qsThreadInfo":
		return "l", true

	case strings.HasPrefix(payload, "qAttached"):
		return "1", true

	case strings.HasPrefix(payload, "H"):
		return "OK", true

	case payload == "g":
		return ReadRegistersHex(s.Facade), true

	case strings.HasPrefix(payload, "G"):
		if err := WriteRegistersHex(s.Facade, payload[1:]); err != nil {
			return "E01", true
		}
		return "OK", true

	case strings.HasPrefix(payload, "p"):
		reg, err := ReadRegisterHex(s.Facade, payload[1:])
		if err != nil {
			return "E01", true
		}
		return reg, true

	case strings.HasPrefix(payload, "m"):
		return s.handleReadMemory(payload[1:])

	case strings.HasPrefix(payload, "M"):
		return s.handleWriteMemory(payload[1:])

	case strings.HasPrefix(payload, "Z"):
		return s.handleBreakpoint(payload[1:], true)

	case strings.HasPrefix(payload, "z"):
		return s.handleBreakpoint(payload[1:], false)

	case payload == "s" || payload == "vCont;s":
		s.Pending = ActionStep
		return "", false

	case payload == "c" || payload == "vCont;c":
		s.Pending = ActionContinue
		return "", false

	case payload == "vCont?":
		return "vCont;c;s;t", true

	case strings.HasPrefix(payload, "vCont;"):
		switch payload[len("vCont;"):] {
		case "c":
			s.Pending = ActionContinue
			return "", false
		case "s":
			s.Pending = ActionStep
			return "", false
		default:
			return "", true
		}

	case payload == "D" || strings.HasPrefix(payload, "D;"):
		s.Detached = true
		return "OK", true

	default:
		log.ModGDB.DebugZ("unhandled GDB command").String("payload", payload).End()
		return "", true
	}
}

func (s *GDBSession) handleReadMemory(args string) (string, bool) {
	addr, size, err := parseAddrLen(args)
	if err != nil {
		return "E01", true
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = s.Facade.ReadByte(addr + uint32(i))
	}
	return hexEncode(buf), true
}

func (s *GDBSession) handleWriteMemory(args string) (string, bool) {
	colon := strings.IndexByte(args, ':')
	if colon == -1 {
		return "E01", true
	}
	addr, size, err := parseAddrLen(args[:colon])
	if err != nil {
		return "E01", true
	}
	data, err := hexDecode(args[colon+1:])
	if err != nil || uint32(len(data)) != size {
		return "E01", true
	}
	for i, b := range data {
		s.Facade.WriteByte(addr+uint32(i), b)
	}
	return "OK", true
}

func (s *GDBSession) handleBreakpoint(args string, set bool) (string, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return "E01", true
	}
	bpType, err1 := strconv.ParseUint(parts[0], 16, 8)
	addr, err2 := strconv.ParseUint(parts[1], 16, 32)
	if err1 != nil || err2 != nil {
		return "E01", true
	}
	if bpType != 0 {
		return "", true // unsupported breakpoint type
	}

	if set {
		s.Breakpoints.Set(uint32(addr))
		if s.Facade.SetBreakpoint(uint32(addr)) {
			log.ModGDB.DebugZ("breakpoint set").Hex32("addr", uint32(addr)).End()
			return "OK", true
		}
		return "E01", true
	}

	s.Breakpoints.Remove(uint32(addr))
	if s.Facade.RemoveBreakpoint(uint32(addr)) {
		log.ModGDB.DebugZ("breakpoint removed").Hex32("addr", uint32(addr)).End()
		return "OK", true
	}
	return "E01", true
}

func parseAddrLen(s string) (addr uint32, size uint32, err error) {
	comma := strings.IndexByte(s, ',')
	if comma == -1 {
		return 0, 0, errBadArgs
	}
	a, err := strconv.ParseUint(s[:comma], 16, 32)
	if err != nil {
		return 0, 0, err
	}
	l, err := strconv.ParseUint(s[comma+1:], 16, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint32(a), uint32(l), nil
}

func hex2(b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}
