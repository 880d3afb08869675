package dependency

import (
	"fmt"

	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/serialization"
)

// Schema identifiers. These strings are persisted; never reuse one for a
// different field layout.
const (
	SchemaModule   = "depgen/dependency/ModuleDependency"
	SchemaProvided = "depgen/dependency/ProvidedDependency"
	SchemaRequire  = "depgen/dependency/RequireDependency"
	SchemaConst    = "depgen/dependency/ConstDependency"
)

// maxListLen bounds nested dependency lists read from cache bytes.
const maxListLen = 1 << 24

// Field layout versions, bumped whenever a variant's Serialize changes.
const (
	versionModule   = 1
	versionProvided = 1
	versionRequire  = 1
	versionConst    = 1
)

// RegisterSchemas adds every dependency variant to reg.
func RegisterSchemas(reg *serialization.Registry) {
	reg.Register(serialization.Schema{ID: SchemaModule, Version: versionModule,
		New: func() serialization.Serializable { return &ModuleDependency{} }})
	reg.Register(serialization.Schema{ID: SchemaProvided, Version: versionProvided,
		New: func() serialization.Serializable { return &ProvidedDependency{} }})
	reg.Register(serialization.Schema{ID: SchemaRequire, Version: versionRequire,
		New: func() serialization.Serializable { return &RequireDependency{} }})
	reg.Register(serialization.Schema{ID: SchemaConst, Version: versionConst,
		New: func() serialization.Serializable { return &ConstDependency{} }})
}

// NewSchemaRegistry returns a registry with every dependency variant registered.
func NewSchemaRegistry() *serialization.Registry {
	reg := serialization.NewRegistry()
	RegisterSchemas(reg)
	return reg
}

// EncodeList serializes deps in order.
func EncodeList(reg *serialization.Registry, deps []Dependency) ([]byte, error) {
	objs := make([]serialization.Serializable, len(deps))
	for i, d := range deps {
		objs[i] = d
	}
	return reg.Encode(objs...)
}

// DecodeList restores a list written by EncodeList.
// Any unknown schema or non-dependency object rejects the whole list.
func DecodeList(reg *serialization.Registry, data []byte) ([]Dependency, error) {
	objs, err := reg.Decode(data)
	if err != nil {
		return nil, err
	}
	return fromObjects(objs)
}

// ReadList reads a nested dependency list written by WriteList.
func ReadList(r *serialization.Reader) []Dependency {
	n := r.ReadInt()
	if r.Err() != nil {
		return nil
	}
	if n < 0 || n > maxListLen {
		r.Fail(errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("dependency count %d out of range", n)))
		return nil
	}
	objs := make([]serialization.Serializable, 0, n)
	for i := 0; i < n && r.Err() == nil; i++ {
		objs = append(objs, r.ReadObjectFunc(isSchema))
	}
	if r.Err() != nil {
		return nil
	}
	deps, err := fromObjects(objs)
	if err != nil {
		r.Fail(err)
		return nil
	}
	return deps
}

// isSchema reports whether id names a dependency variant. Nested lists
// accept nothing else, so a list cannot embed its container.
func isSchema(id string) bool {
	switch id {
	case SchemaModule, SchemaProvided, SchemaRequire, SchemaConst:
		return true
	}
	return false
}

// WriteList writes deps as a nested list inside another object's fields.
func WriteList(w *serialization.Writer, deps []Dependency) {
	w.WriteInt(len(deps))
	for _, d := range deps {
		w.WriteObject(d)
	}
}

func fromObjects(objs []serialization.Serializable) ([]Dependency, error) {
	deps := make([]Dependency, len(objs))
	for i, obj := range objs {
		d, ok := obj.(Dependency)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseDeserialize,
				fmt.Sprintf("object %d (%T) is not a dependency", i, obj))
		}
		deps[i] = d
	}
	return deps, nil
}

func invalidRange(n int) error {
	return errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("range has %d bounds, want 2", n))
}
