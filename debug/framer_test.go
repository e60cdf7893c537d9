package debug

import "testing"

func TestFramerExtractSimplePacket(t *testing.T) {
	var f Framer
	f.Feed([]byte("$g#67"))

	payload, ok := f.Extract()
	if !ok {
		t.Fatal("Extract() ok = false, want true")
	}
	if payload != "g" {
		t.Fatalf("payload = %q, want %q", payload, "g")
	}
	if out := f.TakeOutput(); string(out) != "+" {
		t.Fatalf("ack output = %q, want %q", out, "+")
	}
}

func TestFramerExtractBadChecksum(t *testing.T) {
	var f Framer
	f.Feed([]byte("$g#00"))

	_, ok := f.Extract()
	if ok {
		t.Fatal("Extract() ok = true for a bad checksum, want false")
	}
	if out := f.TakeOutput(); string(out) != "-" {
		t.Fatalf("nak output = %q, want %q", out, "-")
	}
}

func TestFramerNoAckSuppressesOutput(t *testing.T) {
	var f Framer
	f.NoAck = true
	f.Feed([]byte("$g#67"))

	if _, ok := f.Extract(); !ok {
		t.Fatal("Extract() ok = false, want true")
	}
	if out := f.TakeOutput(); len(out) != 0 {
		t.Fatalf("expected no ack output in no-ack mode, got %q", out)
	}
}

func TestFramerIncompletePacket(t *testing.T) {
	var f Framer
	f.Feed([]byte("$g"))

	if _, ok := f.Extract(); ok {
		t.Fatal("Extract() ok = true for an incomplete packet, want false")
	}

	f.Feed([]byte("#67"))
	payload, ok := f.Extract()
	if !ok || payload != "g" {
		t.Fatalf("Extract() = (%q, %v), want (\"g\", true)", payload, ok)
	}
}

func TestFramerInterruptToken(t *testing.T) {
	var f Framer
	f.Feed([]byte{0x03})

	payload, ok := f.Extract()
	if !ok || payload != Interrupt {
		t.Fatalf("Extract() = (%q, %v), want interrupt token", payload, ok)
	}
}

func TestFramerDiscardsGarbageBeforeDollar(t *testing.T) {
	var f Framer
	f.Feed([]byte("+garbage$g#67"))

	payload, ok := f.Extract()
	if !ok || payload != "g" {
		t.Fatalf("Extract() = (%q, %v), want (\"g\", true)", payload, ok)
	}
}

func TestEncodeChecksum(t *testing.T) {
	frame := Encode("OK")
	want := "$OK#9a"
	if string(frame) != want {
		t.Fatalf("Encode(%q) = %q, want %q", "OK", frame, want)
	}
}
