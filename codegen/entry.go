package codegen

import (
	"fmt"

	"github.com/wippyai/depgen/dependency"
	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/initfragment"
	"github.com/wippyai/depgen/runtime"
	"github.com/wippyai/depgen/serialization"
)

const (
	SchemaEntry  = "depgen/codegen/Entry"
	entryVersion = 1

	maxFragments = 1 << 20
)

// Entry is the cached result of one module's generation.
type Entry struct {
	Hash         string
	Source       string
	Requirements []runtime.Requirement
	Fragments    []initfragment.Fragment
	Dependencies []dependency.Dependency
}

// SchemaID implements serialization.Serializable.
func (e *Entry) SchemaID() string { return SchemaEntry }

// Serialize writes hash, source, requirements, fragments, then dependencies.
func (e *Entry) Serialize(w *serialization.Writer) {
	w.WriteString(e.Hash)
	w.WriteString(e.Source)
	reqs := make([]string, len(e.Requirements))
	for i, r := range e.Requirements {
		reqs[i] = string(r)
	}
	w.WriteStrings(reqs)
	w.WriteInt(len(e.Fragments))
	for _, f := range e.Fragments {
		w.WriteString(f.Content)
		w.WriteString(f.Key)
		w.WriteString(f.EndContent)
		w.WriteInt(int(f.Stage))
		w.WriteInt(f.Priority)
	}
	dependency.WriteList(w, e.Dependencies)
}

// Deserialize reads fields in Serialize order.
func (e *Entry) Deserialize(r *serialization.Reader) {
	e.Hash = r.ReadString()
	e.Source = r.ReadString()
	reqs := r.ReadStrings()
	e.Requirements = make([]runtime.Requirement, len(reqs))
	for i, req := range reqs {
		e.Requirements[i] = runtime.Requirement(req)
	}

	n := r.ReadInt()
	if n < 0 || n > maxFragments {
		r.Fail(errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("fragment count %d out of range", n)))
		return
	}
	e.Fragments = make([]initfragment.Fragment, 0, n)
	for i := 0; i < n && r.Err() == nil; i++ {
		e.Fragments = append(e.Fragments, initfragment.Fragment{
			Content:    r.ReadString(),
			Key:        r.ReadString(),
			EndContent: r.ReadString(),
			Stage:      initfragment.Stage(r.ReadInt()),
			Priority:   r.ReadInt(),
		})
	}
	e.Dependencies = dependency.ReadList(r)
}

// NewSchemaRegistry returns a registry holding the entry schema and every
// dependency variant.
func NewSchemaRegistry() *serialization.Registry {
	reg := dependency.NewSchemaRegistry()
	reg.Register(serialization.Schema{ID: SchemaEntry, Version: entryVersion,
		New: func() serialization.Serializable { return &Entry{} }})
	return reg
}

func encodeEntry(reg *serialization.Registry, e *Entry) ([]byte, error) {
	return reg.Encode(e)
}

func decodeEntry(reg *serialization.Registry, data []byte) (*Entry, error) {
	objs, err := reg.Decode(data)
	if err != nil {
		return nil, err
	}
	if len(objs) != 1 {
		return nil, errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("cache entry holds %d objects, want 1", len(objs)))
	}
	e, ok := objs[0].(*Entry)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("cache entry is %T", objs[0]))
	}
	return e, nil
}
