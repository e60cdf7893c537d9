package hw

import (
	"fmt"
	"os"
	"sync"
)

// Machine is a minimal, in-memory reference implementation of Facade. It
// stands in for the real CPU interpreter and devices so the debug core can
// be exercised and tested end to end without a real emulator behind it.
type Machine struct {
	mu sync.Mutex

	regs [RegisterCount]uint32
	mem  []byte

	breakpoints map[uint32]bool

	paused  bool
	pending struct {
		active bool
		kind   string // "save" or "load"
		path   string
		err    error
		done   bool
	}

	screenshotPending bool
	lastScreenshot    string

	interactiveDebugger bool
}

// NewMachine returns a Machine with memSize bytes of linear memory, EIP set
// to the DOS-era reset vector (0xFFF0) and CS set to 0xF000, matching a
// freshly reset x86 real-mode CPU.
func NewMachine(memSize uint32) *Machine {
	m := &Machine{
		mem:         make([]byte, memSize),
		breakpoints: make(map[uint32]bool),
	}
	m.regs[RegEIP] = 0xFFF0
	m.regs[RegCS] = 0xF000
	return m
}

func (m *Machine) GetRegister(index int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= RegisterCount {
		return 0
	}
	return m.regs[index]
}

func (m *Machine) SetRegister(index int, val uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= RegisterCount {
		return
	}
	m.regs[index] = val
}

func (m *Machine) ReadByte(linear uint32) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(linear) >= len(m.mem) {
		return 0
	}
	return m.mem[linear]
}

func (m *Machine) WriteByte(linear uint32, val uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(linear) >= len(m.mem) {
		return
	}
	m.mem[linear] = val
}

func (m *Machine) SaveMemoryBin(path string, addr, size uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if uint64(addr)+uint64(size) > uint64(len(m.mem)) {
		return fmt.Errorf("range [%#x,%#x) out of bounds", addr, uint64(addr)+uint64(size))
	}
	return os.WriteFile(path, m.mem[addr:addr+size], 0644)
}

func (m *Machine) SetBreakpoint(linear uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breakpoints[linear] = true
	return true
}

func (m *Machine) RemoveBreakpoint(linear uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.breakpoints[linear]
	delete(m.breakpoints, linear)
	return ok
}

func (m *Machine) AddKey(key KeyID, down bool) {
	// A real keyboard controller would enqueue a scancode here; the
	// reference machine has no device to feed.
}

func (m *Machine) ButtonPressed(id MouseButton)  {}
func (m *Machine) ButtonReleased(id MouseButton) {}
func (m *Machine) CursorMoved(dx, dy int32, rel bool) {}

// pngPlaceholder is a minimal valid 1x1 transparent PNG, written to disk in
// place of a real framebuffer capture; there is no video output behind this
// reference Facade to actually rasterize.
var pngPlaceholder = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func (m *Machine) TakeScreenshot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screenshotPending = false

	f, err := os.CreateTemp("", "xtdbg-screenshot-*.png")
	if err != nil {
		return
	}
	defer f.Close()
	f.Write(pngPlaceholder)
	m.lastScreenshot = f.Name()
}

func (m *Machine) IsScreenshotPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screenshotPending
}

func (m *Machine) LastScreenshotPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastScreenshot
}

func (m *Machine) ClearLastScreenshotPath() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastScreenshot = ""
}

func (m *Machine) RequestSave(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending.active = true
	m.pending.kind = "save"
	m.pending.path = path
	m.pending.done = true
	m.pending.err = nil
}

func (m *Machine) RequestLoad(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending.active = true
	m.pending.kind = "load"
	m.pending.path = path
	if _, err := os.Stat(path); err != nil {
		m.pending.err = err
	} else {
		m.pending.err = nil
	}
	m.pending.done = true
}

func (m *Machine) IsPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.active && !m.pending.done
}

func (m *Machine) IsComplete() (done bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending.active {
		return false, nil
	}
	if !m.pending.done {
		return false, nil
	}
	m.pending.active = false
	return true, m.pending.err
}

func (m *Machine) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Machine) RequestPause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

func (m *Machine) RequestResume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

func (m *Machine) RequestReset(dosOnly bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = [RegisterCount]uint32{}
	m.regs[RegEIP] = 0xFFF0
	m.regs[RegCS] = 0xF000
}

func (m *Machine) IsInteractiveDebuggerActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interactiveDebugger
}

// SetInteractiveDebuggerActive lets tests (and, eventually, a real
// interactive debugger UI) toggle the mutual-exclusion flag GDB accept
// checks.
func (m *Machine) SetInteractiveDebuggerActive(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactiveDebugger = active
}

var _ Facade = (*Machine)(nil)
