package debug

import (
	"os"
	"time"

	"xtdbg/emu/log"
	"xtdbg/hw"
)

const (
	screenshotTimeout  = 5 * time.Second
	saveLoadTimeout    = 30 * time.Second
	pauseResumeTimeout = time.Second
)

// commandNames is the fixed list query-commands advertises. The dispatch
// switch below also accepts system_powerdown, which is not listed here.
var commandNames = []string{
	"qmp_capabilities",
	"query-commands",
	"query-status",
	"send-key",
	"input-send-event",
	"memdump",
	"screendump",
	"savestate",
	"loadstate",
	"stop",
	"cont",
	"system_reset",
	"quit",
}

// QMPSession holds the per-connection state for one QMP client (the
// greeting itself is sent by QMPServer): whether qmp_capabilities has been negotiated (kept
// but not enforced, matching the relaxed decision recorded for this
// component), and the mouse motion accumulator that input-send-event's
// relative moves feed into before being flushed to the facade.
type QMPSession struct {
	Facade hw.Facade
	Gate   *Gate

	negotiated bool

	mouseDX, mouseDY int32
	mouseDirty       bool
}

func NewQMPSession(f hw.Facade, g *Gate) *QMPSession {
	return &QMPSession{Facade: f, Gate: g}
}

// HandleObject dispatches one decoded QMP command object and returns its
// wire-ready, CRLF-terminated reply.
func (s *QMPSession) HandleObject(obj string) []byte {
	cmd, ok := ExtractString(obj, "execute")
	if !ok {
		return errorReply(genericErrorf("QMP input object must have the 'execute' member"))
	}

	args, hasArgs := extractNestedObject(obj, "arguments")
	if !hasArgs {
		args = "{}"
	}

	ret, err := s.dispatch(cmd, args)
	if err != nil {
		qerr, ok := err.(*QMPError)
		if !ok {
			qerr = genericErrorf("%s", err.Error())
		}
		log.ModQMP.DebugZ("command failed").String("execute", cmd).Error("err", qerr).End()
		return errorReply(qerr)
	}
	return successReply(ret)
}

func (s *QMPSession) dispatch(cmd, args string) (any, error) {
	switch cmd {
	case "qmp_capabilities":
		s.negotiated = true
		return nil, nil

	case "query-commands":
		items := make([]map[string]string, len(commandNames))
		for i, name := range commandNames {
			items[i] = map[string]string{"name": name}
		}
		return items, nil

	case "query-status":
		return s.queryStatus(), nil

	case "send-key":
		return nil, s.handleSendKey(args)

	case "input-send-event":
		return nil, s.handleInputSendEvent(args)

	case "memdump":
		return s.handleMemdump(args)

	case "screendump":
		return s.handleScreendump(args)

	case "savestate":
		return s.handleSaveLoad(args, ReqSave)

	case "loadstate":
		return s.handleSaveLoad(args, ReqLoad)

	case "stop":
		return nil, s.handlePauseResume(ReqPause)

	case "cont":
		return nil, s.handlePauseResume(ReqResume)

	case "system_reset":
		dosOnly, _ := ExtractBool(args, "dos_only")
		resetArg := "0"
		if dosOnly {
			resetArg = "1"
		}
		if !s.Gate.Submit(ReqReset, resetArg) {
			return nil, genericErrorf("a request is already pending")
		}
		return nil, nil

	case "quit", "system_powerdown":
		return nil, nil

	default:
		return nil, commandNotFound(cmd)
	}
}

func (s *QMPSession) queryStatus() map[string]any {
	status := "running"
	if s.Facade.IsPaused() {
		status = "paused"
	}
	return map[string]any{
		"status":     status,
		"running":    !s.Facade.IsPaused(),
		"singlestep": false,
	}
}

// handleSendKey presses every key in the "keys" array in order, optionally
// holds for "hold-time" milliseconds, then releases them in reverse order.
// An empty key list is a GenericError; an unrecognized QKeyCode is logged
// and skipped rather than failing the whole command.
func (s *QMPSession) handleSendKey(args string) error {
	items, ok := ExtractArray(args, "keys")
	if !ok || len(items) == 0 {
		return genericErrorf("send-key requires a non-empty 'keys' array")
	}

	holdMS, ok := ExtractInt(args, "hold-time")
	if !ok {
		holdMS = 100
	}

	var pressed []hw.KeyID
	for _, item := range items {
		qcode, _ := ExtractString(item, "data")
		key := hw.KeyByQCode(qcode)
		if key == hw.KeyNone {
			log.ModQMP.WarnZ("unrecognized QKeyCode in send-key").String("qcode", qcode).End()
			continue
		}
		s.Facade.AddKey(key, true)
		pressed = append(pressed, key)
	}

	time.Sleep(time.Duration(holdMS) * time.Millisecond)

	for i := len(pressed) - 1; i >= 0; i-- {
		s.Facade.AddKey(pressed[i], false)
	}
	return nil
}

// handleInputSendEvent applies a batch of key/relative-mouse/mouse-button
// InputEvent objects. Relative mouse motion accumulates across events in
// the same batch and is flushed once as a single CursorMoved call.
func (s *QMPSession) handleInputSendEvent(args string) error {
	events, ok := ExtractArray(args, "events")
	if !ok {
		return genericErrorf("input-send-event requires an 'events' array")
	}

	s.mouseDX, s.mouseDY = 0, 0
	s.mouseDirty = false

	for _, ev := range events {
		typ, _ := ExtractString(ev, "type")
		data, ok := extractNestedObject(ev, "data")
		if !ok {
			continue
		}
		switch typ {
		case "key":
			s.applyKeyEvent(data)
		case "btn":
			s.applyButtonEvent(data)
		case "rel":
			s.applyRelEvent(data)
		}
	}

	if s.mouseDirty {
		s.Facade.CursorMoved(s.mouseDX, s.mouseDY, true)
	}
	return nil
}

func (s *QMPSession) applyKeyEvent(data string) {
	keyObj, ok := extractNestedObject(data, "key")
	if !ok {
		return
	}
	qcode, _ := ExtractString(keyObj, "data")
	down, _ := ExtractBool(data, "down")
	key := hw.KeyByQCode(qcode)
	if key == hw.KeyNone {
		log.ModQMP.WarnZ("unrecognized QKeyCode in input-send-event").String("qcode", qcode).End()
		return
	}
	s.Facade.AddKey(key, down)
}

func (s *QMPSession) applyButtonEvent(data string) {
	name, _ := ExtractString(data, "button")
	down, _ := ExtractBool(data, "down")
	btn, ok := hw.MouseButtonByName(name)
	if !ok {
		return
	}
	if down {
		s.Facade.ButtonPressed(btn)
	} else {
		s.Facade.ButtonReleased(btn)
	}
}

func (s *QMPSession) applyRelEvent(data string) {
	axis, _ := ExtractString(data, "axis")
	value, _ := ExtractInt(data, "value")
	switch axis {
	case "x":
		s.mouseDX += int32(value)
	case "y":
		s.mouseDY += int32(value)
	}
	s.mouseDirty = true
}

// handleMemdump reads a linear memory range through a temp file (the
// Facade only knows how to dump to a path) and either returns it
// base64-encoded, or copies it to the caller's requested "file" and
// returns that path. Size is capped at 16 MiB.
const memdumpMaxSize = 16 << 20

func (s *QMPSession) handleMemdump(args string) (any, error) {
	addr, ok := ExtractInt(args, "address")
	if !ok {
		return nil, genericErrorf("memdump requires an 'address' argument")
	}
	size, ok := ExtractInt(args, "size")
	if !ok || size <= 0 {
		return nil, genericErrorf("memdump requires a positive 'size' argument")
	}
	if size > memdumpMaxSize {
		return nil, genericErrorf("memdump size %d exceeds the %d byte limit", size, memdumpMaxSize)
	}

	log.ModQMP.DebugZ("memdump").Hex32("addr", uint32(addr)).Uint("size", uint64(size)).End()

	if file, ok := ExtractString(args, "file"); ok {
		if err := s.Facade.SaveMemoryBin(file, uint32(addr), uint32(size)); err != nil {
			return nil, genericErrorf("%s", err.Error())
		}
		return map[string]any{"file": file, "size": size}, nil
	}

	tmp, err := os.CreateTemp("", "xtdbg-memdump-*.bin")
	if err != nil {
		return nil, genericErrorf("%s", err.Error())
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := s.Facade.SaveMemoryBin(tmpPath, uint32(addr), uint32(size)); err != nil {
		return nil, genericErrorf("%s", err.Error())
	}
	raw, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, genericErrorf("%s", err.Error())
	}
	return map[string]any{"data": raw, "size": size}, nil
}

// handleScreendump triggers a screenshot through the Gate and, once it
// completes, either copies the resulting file to the caller's requested
// "file" or reads it back for a base64 "data" reply.
func (s *QMPSession) handleScreendump(args string) (any, error) {
	if !s.Gate.Submit(ReqScreenshot, "") {
		return nil, genericErrorf("a request is already pending")
	}
	if err := s.Gate.Await(screenshotTimeout); err != nil {
		return nil, err
	}

	shotPath := s.Facade.LastScreenshotPath()
	defer s.Facade.ClearLastScreenshotPath()
	if shotPath == "" {
		return nil, genericErrorf("screenshot completed but produced no file")
	}

	raw, err := os.ReadFile(shotPath)
	if err != nil {
		return nil, genericErrorf("%s", err.Error())
	}

	if file, ok := ExtractString(args, "file"); ok {
		if err := os.WriteFile(file, raw, 0644); err != nil {
			return nil, genericErrorf("%s", err.Error())
		}
		return map[string]any{"file": file, "size": len(raw), "format": "png"}, nil
	}
	return map[string]any{"data": raw, "size": len(raw), "format": "png"}, nil
}

func (s *QMPSession) handleSaveLoad(args string, kind RequestKind) (any, error) {
	path, ok := ExtractString(args, "file")
	if !ok {
		return nil, genericErrorf("savestate/loadstate requires a 'file' argument")
	}
	if kind == ReqLoad {
		if _, err := os.Stat(path); err != nil {
			return nil, genericErrorf("%s", err.Error())
		}
	}
	if !s.Gate.Submit(kind, path) {
		return nil, genericErrorf("a request is already pending")
	}
	if err := s.Gate.Await(saveLoadTimeout); err != nil {
		return nil, err
	}
	return map[string]any{"file": path}, nil
}

func (s *QMPSession) handlePauseResume(kind RequestKind) error {
	if kind == ReqPause && s.Facade.IsPaused() {
		return nil
	}
	if kind == ReqResume && !s.Facade.IsPaused() {
		return nil
	}
	if !s.Gate.Submit(kind, "") {
		return genericErrorf("a request is already pending")
	}
	return s.Gate.Await(pauseResumeTimeout)
}
