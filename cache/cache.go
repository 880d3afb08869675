// Package cache stores encoded code generation results between builds.
//
// Stores are opaque key/value byte maps; the codec of each entry belongs to
// its producer. Memory can be persisted to a file with Snapshot and restored
// with Load.
package cache

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"

	deperrors "github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/internal/binary"
)

// Store is a concurrent-safe key/value store of encoded entries.
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte)
	Delete(key string)
}

const (
	snapshotMagic   uint32 = 0x73636764 // "dgcs"
	snapshotVersion uint32 = 1

	// maxEntrySize bounds a single entry read from a snapshot.
	maxEntrySize = 1 << 28
)

// Memory is an in-process Store.
type Memory struct {
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Get returns the entry stored under key.
// The returned slice must not be modified.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[key]
	return data, ok
}

// Put stores a copy of data under key.
func (m *Memory) Put(key string, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.entries[key] = cp
	m.mu.Unlock()
}

// Delete removes key.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Keys returns every key in lexical order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Snapshot writes every entry to w in key order, so equal stores produce
// equal bytes.
func (m *Memory) Snapshot(w io.Writer) error {
	bw := binary.NewWriter()
	bw.WriteU32LE(snapshotMagic)
	bw.WriteU32(snapshotVersion)

	keys := m.Keys()
	m.mu.RLock()
	bw.WriteU32(uint32(len(keys)))
	for _, k := range keys {
		data := m.entries[k]
		bw.WriteString(k)
		bw.WriteU32(uint32(len(data)))
		bw.WriteBytes(data)
	}
	m.mu.RUnlock()

	if _, err := w.Write(bw.Bytes()); err != nil {
		return deperrors.Wrap(deperrors.PhaseCache, deperrors.KindInvalidData, err, "write snapshot")
	}
	Logger().Debug("cache snapshot written",
		zap.Int("entries", len(keys)),
		zap.Int("bytes", bw.Len()))
	return nil
}

// Load replaces the store's entries with those read from r.
// On error the store is left unchanged.
func (m *Memory) Load(r io.Reader) error {
	br := binary.NewReader(bufio.NewReader(r))

	magic, err := br.ReadU32LE()
	if err != nil {
		return loadError(br, "magic", err)
	}
	if magic != snapshotMagic {
		return deperrors.InvalidData(deperrors.PhaseCache, fmt.Sprintf("bad snapshot magic 0x%08x", magic))
	}
	version, err := br.ReadU32()
	if err != nil {
		return loadError(br, "version", err)
	}
	if version != snapshotVersion {
		return deperrors.New(deperrors.PhaseCache, deperrors.KindSchemaVersion).
			Detail("snapshot version %d, want %d", version, snapshotVersion).
			Build()
	}
	count, err := br.ReadU32()
	if err != nil {
		return loadError(br, "entry count", err)
	}

	entries := make(map[string][]byte, min(count, 1<<16))
	for i := uint32(0); i < count; i++ {
		key, err := br.ReadString()
		if err != nil {
			return loadError(br, "entry key", err)
		}
		size, err := br.ReadU32()
		if err != nil {
			return loadError(br, "entry size", err)
		}
		if size > maxEntrySize {
			return deperrors.InvalidData(deperrors.PhaseCache, fmt.Sprintf("entry %q size %d exceeds limit", key, size))
		}
		data, err := br.ReadBytes(int(size))
		if err != nil {
			return loadError(br, "entry data", err)
		}
		entries[key] = data
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()

	Logger().Debug("cache snapshot loaded", zap.Uint32("entries", count))
	return nil
}

func loadError(br *binary.Reader, field string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return deperrors.Wrap(deperrors.PhaseCache, deperrors.KindInvalidData, br.WrapError(field, err), "load snapshot")
}
