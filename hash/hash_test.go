package hash

import (
	"testing"
)

func TestDigestDeterministic(t *testing.T) {
	a := New()
	b := New()
	for _, d := range []*Digest{a, b} {
		String(d, "process")
		String(d, "browser")
		Int(d, 42)
	}
	if a.Sum64() != b.Sum64() {
		t.Errorf("Sum64: got %x and %x for identical input", a.Sum64(), b.Sum64())
	}
	if a.Hex() != b.Hex() {
		t.Errorf("Hex: got %q and %q", a.Hex(), b.Hex())
	}
}

func TestFieldsDoNotAlias(t *testing.T) {
	a := New()
	String(a, "ab")
	String(a, "c")

	b := New()
	String(b, "a")
	String(b, "bc")

	if a.Sum64() == b.Sum64() {
		t.Error("adjacent fields should not alias")
	}
}

func TestHexWidth(t *testing.T) {
	d := New()
	for i := 0; i < 32; i++ {
		Int(d, i)
		if got := len(d.Hex()); got != 16 {
			t.Fatalf("Hex length: got %d, want 16", got)
		}
	}
}

func TestUpdateMatchesUpdateString(t *testing.T) {
	a := New()
	a.Update([]byte("module body"))
	b := New()
	b.UpdateString("module body")
	if a.Sum64() != b.Sum64() {
		t.Error("Update and UpdateString should agree")
	}

	a.Reset()
	if a.Sum64() != New().Sum64() {
		t.Error("Reset should return to the empty digest")
	}
}
