package serialization

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/internal/binary"
)

// Stream header constants.
const (
	Magic         uint32 = 0x6e656764 // "dgen" little-endian
	FormatVersion uint32 = 1
)

// Serializable is implemented by every object that can live in the cache.
type Serializable interface {
	// SchemaID returns the stable identifier the object registers under.
	SchemaID() string
	// Serialize writes fields in the schema's declared order.
	Serialize(w *Writer)
	// Deserialize reads fields in exactly the order Serialize wrote them.
	Deserialize(r *Reader)
}

// Schema binds a stable identifier and version to a constructor.
type Schema struct {
	New     func() Serializable
	ID      string
	Version uint32
}

// Registry maps schema identifiers to constructors.
// Safe for concurrent use; registration normally happens once at startup.
type Registry struct {
	schemas map[string]Schema
	mu      sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]Schema)}
}

// Register adds or replaces a schema.
func (r *Registry) Register(s Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[s.ID] = s
}

// Lookup returns the schema registered under id.
func (r *Registry) Lookup(id string) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[id]
	return s, ok
}

// IDs returns the registered schema identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.schemas))
	for id := range r.schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewWriter returns a Writer bound to this registry with no header.
// Use it to embed fields inside another stream; Encode adds the header.
func (r *Registry) NewWriter() *Writer {
	return &Writer{w: binary.NewWriter(), reg: r}
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.w.Bytes()
}

// Encode writes a header followed by each object.
func (r *Registry) Encode(objs ...Serializable) ([]byte, error) {
	w := r.NewWriter()
	w.w.WriteU32LE(Magic)
	w.w.WriteU32(FormatVersion)
	w.w.WriteU32(uint32(len(objs)))
	for _, obj := range objs {
		w.WriteObject(obj)
	}
	if w.err != nil {
		return nil, w.err
	}
	return w.Bytes(), nil
}

// Decode reads a stream produced by Encode.
// Any failure rejects the whole stream; callers treat that as a cache miss.
func (r *Registry) Decode(data []byte) ([]Serializable, error) {
	rd := newReader(data, r)

	magic, err := rd.r.ReadU32LE()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDeserialize, errors.KindInvalidData, err, "read header")
	}
	if magic != Magic {
		return nil, errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("bad magic 0x%08x", magic))
	}
	version, err := rd.r.ReadU32()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDeserialize, errors.KindInvalidData, err, "read format version")
	}
	if version != FormatVersion {
		return nil, errors.New(errors.PhaseDeserialize, errors.KindSchemaVersion).
			Detail("stream format version %d, current version %d", version, FormatVersion).
			Value(version).
			Build()
	}

	n := rd.length("object count")
	objs := make([]Serializable, 0, n)
	for i := 0; i < n && rd.err == nil; i++ {
		objs = append(objs, rd.ReadObject())
	}
	if rd.err != nil {
		return nil, rd.err
	}
	if pos := rd.r.Position(); pos < len(data) {
		return nil, errors.InvalidData(errors.PhaseDeserialize,
			fmt.Sprintf("%d trailing bytes after last object at position %d", len(data)-pos, pos))
	}
	return objs, nil
}
