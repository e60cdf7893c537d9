package debug

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"xtdbg/hw"
)

// ReadRegistersHex returns all 16 registers, byte-swapped to little-endian
// and hex-concatenated, matching GDB RSP's 'g' reply.
func ReadRegistersHex(f hw.Facade) string {
	buf := make([]byte, hw.RegisterCount*4)
	for i := 0; i < hw.RegisterCount; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], f.GetRegister(i))
	}
	return fmt.Sprintf("%x", buf)
}

// WriteRegistersHex parses the hex stream produced by ReadRegistersHex and
// writes every register back through f, matching GDB RSP's 'G' command.
func WriteRegistersHex(f hw.Facade, hexStr string) error {
	raw, err := hexDecode(hexStr)
	if err != nil {
		return err
	}
	if len(raw) != hw.RegisterCount*4 {
		return fmt.Errorf("expected %d register bytes, got %d", hw.RegisterCount*4, len(raw))
	}
	for i := 0; i < hw.RegisterCount; i++ {
		f.SetRegister(i, binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return nil
}

// ReadRegisterHex returns register n (given as a hex string), byte-swapped
// to little-endian hex, matching GDB RSP's 'p' command.
func ReadRegisterHex(f hw.Facade, nHex string) (string, error) {
	n, err := strconv.ParseUint(nHex, 16, 32)
	if err != nil || int(n) >= hw.RegisterCount {
		return "", fmt.Errorf("invalid register index %q", nHex)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], f.GetRegister(int(n)))
	return fmt.Sprintf("%x", buf[:]), nil
}

func hexDecode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		b, err := parseHexByte([]byte(s[i*2 : i*2+2]))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func hexEncode(b []byte) string {
	return fmt.Sprintf("%x", b)
}
