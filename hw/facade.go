// Package hw defines the narrow interface the debug core uses to reach the
// rest of the emulator, and a self-contained reference implementation of it.
package hw

// Facade is the narrow external interface the GDB and QMP sessions use to
// reach the CPU interpreter, memory, keyboard/mouse devices, the screenshot
// subsystem and the save-state machinery. None of those subsystems are
// implemented by this package's caller; Machine below is a minimal,
// in-memory stand-in good enough to drive the protocol servers end to end.
type Facade interface {
	// Registers. Index is 0..15 in the fixed order EAX, ECX, EDX, EBX, ESP,
	// EBP, ESI, EDI, EIP, EFLAGS, CS, SS, DS, ES, FS, GS.
	GetRegister(index int) uint32
	SetRegister(index int, val uint32)

	// Memory. Addresses are linear (32-bit flat).
	ReadByte(linear uint32) uint8
	WriteByte(linear uint32, val uint8)
	SaveMemoryBin(path string, addr, size uint32) error

	// Breakpoints.
	SetBreakpoint(linear uint32) bool
	RemoveBreakpoint(linear uint32) bool

	// Keyboard.
	AddKey(key KeyID, down bool)

	// Mouse.
	ButtonPressed(id MouseButton)
	ButtonReleased(id MouseButton)
	CursorMoved(dx, dy int32, rel bool)

	// Screenshot.
	TakeScreenshot()
	IsScreenshotPending() bool
	LastScreenshotPath() string
	ClearLastScreenshotPath()

	// Save/load.
	RequestSave(path string)
	RequestLoad(path string)
	IsPending() bool
	IsComplete() (done bool, err error)

	// Emulator control.
	IsPaused() bool
	RequestPause()
	RequestResume()
	RequestReset(dosOnly bool)

	// Diagnostic.
	IsInteractiveDebuggerActive() bool
}

// RegisterCount is the number of 32-bit registers the GDB register file
// exposes (EAX..GS).
const RegisterCount = 16

// Register indices, fixed by the GDB RSP register order for this target.
const (
	RegEAX = iota
	RegECX
	RegEDX
	RegEBX
	RegESP
	RegEBP
	RegESI
	RegEDI
	RegEIP
	RegEFLAGS
	RegCS
	RegSS
	RegDS
	RegES
	RegFS
	RegGS
)
