package debug

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"xtdbg/hw"
)

func TestRegistersRoundTripAllValues(t *testing.T) {
	m := hw.NewMachine(0x1000)
	want := make([]uint32, hw.RegisterCount)
	for i := range want {
		want[i] = uint32(i) * 0x01010101
		m.SetRegister(i, want[i])
	}

	hexStr := ReadRegistersHex(m)

	m2 := hw.NewMachine(0x1000)
	if err := WriteRegistersHex(m2, hexStr); err != nil {
		t.Fatalf("WriteRegistersHex: %v", err)
	}

	got := make([]uint32, hw.RegisterCount)
	for i := range got {
		got[i] = m2.GetRegister(i)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("register round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRegisterHexSingle(t *testing.T) {
	m := hw.NewMachine(0x1000)
	m.SetRegister(hw.RegEBX, 0x11223344)

	got, err := ReadRegisterHex(m, "3")
	if err != nil {
		t.Fatalf("ReadRegisterHex: %v", err)
	}
	if got != "44332211" {
		t.Fatalf("got = %q, want little-endian 44332211", got)
	}
}

func TestWriteRegistersHexWrongLength(t *testing.T) {
	m := hw.NewMachine(0x1000)
	if err := WriteRegistersHex(m, "00"); err == nil {
		t.Fatal("expected error for short register stream")
	}
}
