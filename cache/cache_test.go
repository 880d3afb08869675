package cache

import (
	"bytes"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/wippyai/depgen/errors"
)

func TestMemoryGetPutDelete(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Get("a"); ok {
		t.Error("Get on empty store: want miss")
	}

	data := []byte{1, 2, 3}
	m.Put("a", data)
	data[0] = 9

	got, ok := m.Get("a")
	if !ok || !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("Get: got %v, %v; want [1 2 3], true", got, ok)
	}

	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Error("Get after Delete: want miss")
	}
}

func TestMemoryConcurrent(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			m.Put(key, []byte{byte(i)})
			m.Get(key)
		}(i)
	}
	wg.Wait()
	if m.Len() != 16 {
		t.Errorf("Len: got %d, want 16", m.Len())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := NewMemory()
	m.Put("./b.js", []byte("entry b"))
	m.Put("./a.js", []byte{})
	m.Put("./c.js", bytes.Repeat([]byte{0xff}, 300))

	var buf bytes.Buffer
	if err := m.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored := NewMemory()
	restored.Put("stale", []byte("x"))
	if err := restored.Load(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := restored.Get("stale"); ok {
		t.Error("Load should replace existing entries")
	}
	for _, k := range m.Keys() {
		want, _ := m.Get(k)
		got, ok := restored.Get(k)
		if !ok || !bytes.Equal(got, want) {
			t.Errorf("entry %q: got %v, want %v", k, got, want)
		}
	}

	var again bytes.Buffer
	if err := restored.Snapshot(&again); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("snapshots of equal stores should be byte-identical")
	}
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	m := NewMemory()
	m.Put("k", []byte("value"))
	var buf bytes.Buffer
	if err := m.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	good := buf.Bytes()

	tests := []struct {
		name string
		data []byte
		kind errors.Kind
	}{
		{name: "empty", data: nil, kind: errors.KindInvalidData},
		{name: "bad magic", data: append([]byte{1, 2, 3, 4}, good[4:]...), kind: errors.KindInvalidData},
		{name: "future version", data: append(append([]byte{}, good[:4]...), 0x02, 0x00), kind: errors.KindSchemaVersion},
		{name: "truncated", data: good[:len(good)-2], kind: errors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewMemory()
			target.Put("keep", []byte("me"))
			err := target.Load(bytes.NewReader(tt.data))
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCache, Kind: tt.kind}) {
				t.Errorf("Load: got %v, want %s error", err, tt.kind)
			}
			if _, ok := target.Get("keep"); !ok {
				t.Error("failed Load must leave the store unchanged")
			}
		})
	}
}
