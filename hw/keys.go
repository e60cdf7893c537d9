package hw

// KeyID is the emulator's internal keyboard key identifier space that QMP's
// QEMU QKeyCode strings are translated into before reaching AddKey.
type KeyID int

const KeyNone KeyID = 0

const (
	Key1 KeyID = iota + 1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	KeyShift
	KeyShiftR
	KeyCtrl
	KeyCtrlR
	KeyAlt
	KeyAltR
	KeyMetaL
	KeyMetaR
	KeyMenu

	KeyEsc
	KeyTab
	KeyBackspace
	KeyRet
	KeySpc
	KeyCapsLock
	KeyNumLock
	KeyScrollLock

	KeyGraveAccent
	KeyMinus
	KeyEqual
	KeyBackslash
	KeyBracketLeft
	KeyBracketRight
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyDot
	KeySlash
	KeyLess

	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPDecimal
	KeyKPEquals
	KeyKPComma

	KeyPrintScreen
	KeyPause

	KeyHenkan
	KeyMuhenkan
	KeyHiragana
	KeyYen
	KeyRo
)

var qcodeToKey = map[string]KeyID{
	"1": Key1, "2": Key2, "3": Key3, "4": Key4, "5": Key5,
	"6": Key6, "7": Key7, "8": Key8, "9": Key9, "0": Key0,

	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4, "f5": KeyF5,
	"f6": KeyF6, "f7": KeyF7, "f8": KeyF8, "f9": KeyF9, "f10": KeyF10,
	"f11": KeyF11, "f12": KeyF12, "f13": KeyF13, "f14": KeyF14,
	"f15": KeyF15, "f16": KeyF16, "f17": KeyF17, "f18": KeyF18,
	"f19": KeyF19, "f20": KeyF20, "f21": KeyF21, "f22": KeyF22,
	"f23": KeyF23, "f24": KeyF24,

	"shift": KeyShift, "shift_r": KeyShiftR,
	"ctrl": KeyCtrl, "ctrl_r": KeyCtrlR,
	"alt": KeyAlt, "alt_r": KeyAltR,
	"meta_l": KeyMetaL, "meta_r": KeyMetaR,
	"menu": KeyMenu,

	"esc": KeyEsc, "tab": KeyTab, "backspace": KeyBackspace,
	"ret": KeyRet, "spc": KeySpc,
	"caps_lock": KeyCapsLock, "num_lock": KeyNumLock,
	"scroll_lock": KeyScrollLock,

	"grave_accent": KeyGraveAccent, "minus": KeyMinus, "equal": KeyEqual,
	"backslash": KeyBackslash,
	"bracket_left": KeyBracketLeft, "bracket_right": KeyBracketRight,
	"semicolon": KeySemicolon, "apostrophe": KeyApostrophe,
	"comma": KeyComma, "dot": KeyDot, "slash": KeySlash, "less": KeyLess,

	"insert": KeyInsert, "delete": KeyDelete,
	"home": KeyHome, "end": KeyEnd,
	"pgup": KeyPageUp, "pgdn": KeyPageDown,
	"left": KeyLeft, "right": KeyRight, "up": KeyUp, "down": KeyDown,

	"kp_0": KeyKP0, "kp_1": KeyKP1, "kp_2": KeyKP2, "kp_3": KeyKP3,
	"kp_4": KeyKP4, "kp_5": KeyKP5, "kp_6": KeyKP6, "kp_7": KeyKP7,
	"kp_8": KeyKP8, "kp_9": KeyKP9,
	"kp_divide": KeyKPDivide, "kp_multiply": KeyKPMultiply,
	"kp_subtract": KeyKPSubtract, "kp_add": KeyKPAdd,
	"kp_enter": KeyKPEnter, "kp_decimal": KeyKPDecimal,
	"kp_equals": KeyKPEquals, "kp_comma": KeyKPComma,

	"print": KeyPrintScreen, "sysrq": KeyPrintScreen, "pause": KeyPause,

	"henkan": KeyHenkan, "muhenkan": KeyMuhenkan, "hiragana": KeyHiragana,
	"yen": KeyYen, "ro": KeyRo,
}

// KeyByQCode translates a QEMU QKeyCode string into the emulator's internal
// key id. Unrecognized names yield KeyNone.
func KeyByQCode(qcode string) KeyID {
	if k, ok := qcodeToKey[qcode]; ok {
		return k
	}
	return KeyNone
}
