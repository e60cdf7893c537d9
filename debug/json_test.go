package debug

import "testing"

func TestExtractObject(t *testing.T) {
	buf := []byte(`garbage{"execute":"query-status"}trailing`)
	obj, rest, ok := ExtractObject(buf)
	if !ok {
		t.Fatal("ExtractObject() ok = false, want true")
	}
	if obj != `{"execute":"query-status"}` {
		t.Fatalf("obj = %q", obj)
	}
	if string(rest) != "trailing" {
		t.Fatalf("rest = %q", rest)
	}
}

func TestExtractObjectNested(t *testing.T) {
	buf := []byte(`{"execute":"send-key","arguments":{"keys":[{"type":"qcode","data":"ctrl"}]}}`)
	obj, _, ok := ExtractObject(buf)
	if !ok || obj != string(buf) {
		t.Fatalf("ExtractObject() = (%q, %v)", obj, ok)
	}
}

func TestExtractObjectRespectsStringBraces(t *testing.T) {
	buf := []byte(`{"desc":"a } inside a string"}`)
	obj, _, ok := ExtractObject(buf)
	if !ok || obj != string(buf) {
		t.Fatalf("ExtractObject() = (%q, %v)", obj, ok)
	}
}

func TestExtractObjectIncomplete(t *testing.T) {
	buf := []byte(`{"execute":"query-sta`)
	_, _, ok := ExtractObject(buf)
	if ok {
		t.Fatal("ExtractObject() ok = true for an incomplete object, want false")
	}
}

func TestExtractStringIntBool(t *testing.T) {
	obj := `{"execute":"memdump","arguments":{"address":1024,"size":4,"file":"/tmp/x"},"async":true}`
	if s, ok := ExtractString(obj, "execute"); !ok || s != "memdump" {
		t.Fatalf("ExtractString(execute) = (%q, %v)", s, ok)
	}
	if n, ok := ExtractInt(obj, "address"); !ok || n != 1024 {
		t.Fatalf("ExtractInt(address) = (%d, %v)", n, ok)
	}
	if b, ok := ExtractBool(obj, "async"); !ok || !b {
		t.Fatalf("ExtractBool(async) = (%v, %v)", b, ok)
	}
	if s, ok := ExtractString(obj, "file"); !ok || s != "/tmp/x" {
		t.Fatalf("ExtractString(file) = (%q, %v)", s, ok)
	}
}

func TestExtractArray(t *testing.T) {
	obj := `{"execute":"send-key","arguments":{"keys":[{"type":"qcode","data":"ctrl"},{"type":"qcode","data":"alt"}]}}`
	items, ok := ExtractArray(obj, "keys")
	if !ok {
		t.Fatal("ExtractArray() ok = false, want true")
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if v, ok := ExtractString(items[0], "data"); !ok || v != "ctrl" {
		t.Fatalf("items[0].data = (%q, %v)", v, ok)
	}
	if v, ok := ExtractString(items[1], "data"); !ok || v != "alt" {
		t.Fatalf("items[1].data = (%q, %v)", v, ok)
	}
}
