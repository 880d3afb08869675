package dependency

import (
	"github.com/wippyai/depgen/hash"
	"github.com/wippyai/depgen/serialization"
)

// Kind identifies a dependency variant.
type Kind uint8

const (
	KindModule Kind = iota
	KindProvided
	KindRequire
	KindConst
)

var kindNames = [...]string{
	KindModule:   "ModuleDependency",
	KindProvided: "ProvidedDependency",
	KindRequire:  "RequireDependency",
	KindConst:    "ConstDependency",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UnknownDependency"
}

// Kinds lists every variant.
func Kinds() []Kind {
	return []Kind{KindModule, KindProvided, KindRequire, KindConst}
}

// Range is a half-open byte span [Start, End) in the owning module's original text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int {
	return r.End - r.Start
}

// Dependency is a recorded reference from one module to another module or
// to a synthesized value.
//
// Implemented only by the variants in this package.
type Dependency interface {
	serialization.Serializable

	// Kind returns the variant tag.
	Kind() Kind
	// Request returns the module request, or "" for variants without one.
	Request() string
	// Range returns the replaced span, or nil when the dependency has none.
	Range() *Range
	// UpdateHash folds every field that can change emitted bytes into h.
	UpdateHash(h hash.Hash)

	isDependency()
}

// ModuleRequester is implemented by dependencies that reference a module
// which must be resolved before code generation.
type ModuleRequester interface {
	Dependency
	moduleRequest() string
}

// Base carries the fields shared by every variant.
type Base struct {
	Loc *Range
}

// Range returns the dependency's span or nil.
func (b *Base) Range() *Range {
	return b.Loc
}

// Request returns "" for variants without a module request.
func (b *Base) Request() string {
	return ""
}

func (b *Base) isDependency() {}

func (b *Base) serialize(w *serialization.Writer) {
	if b.Loc == nil {
		w.WriteInts(nil)
		return
	}
	w.WriteInts([]int{b.Loc.Start, b.Loc.End})
}

func (b *Base) deserialize(r *serialization.Reader) {
	span := r.ReadInts()
	switch len(span) {
	case 0:
		b.Loc = nil
	case 2:
		b.Loc = &Range{Start: span[0], End: span[1]}
	default:
		r.Fail(invalidRange(len(span)))
	}
}

func (b *Base) updateHash(h hash.Hash) {
	if b.Loc == nil {
		hash.String(h, "null")
		return
	}
	hash.Int(h, b.Loc.Start)
	hash.Int(h, b.Loc.End)
}

func rangePtr(r Range) *Range {
	return &r
}

// UpdateAll folds every dependency into h once, in list order.
func UpdateAll(h hash.Hash, deps []Dependency) {
	for _, d := range deps {
		d.UpdateHash(h)
	}
}
