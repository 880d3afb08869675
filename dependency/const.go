package dependency

import (
	"github.com/wippyai/depgen/hash"
	"github.com/wippyai/depgen/runtime"
	"github.com/wippyai/depgen/serialization"
)

// ConstDependency replaces its range with a fixed expression and declares
// the runtime requirements that expression needs. With no range it only
// declares requirements.
type ConstDependency struct {
	Base
	Expression   string
	Requirements []runtime.Requirement
}

// NewConst creates a ConstDependency. rng may be nil.
func NewConst(expression string, rng *Range, reqs ...runtime.Requirement) *ConstDependency {
	return &ConstDependency{Base: Base{Loc: rng}, Expression: expression, Requirements: reqs}
}

// Kind implements Dependency.
func (d *ConstDependency) Kind() Kind { return KindConst }

// UpdateHash implements Dependency.
func (d *ConstDependency) UpdateHash(h hash.Hash) {
	d.Base.updateHash(h)
	hash.String(h, d.Expression)
	for _, req := range d.Requirements {
		hash.String(h, string(req))
	}
	hash.Int(h, len(d.Requirements))
}

// SchemaID implements serialization.Serializable.
func (d *ConstDependency) SchemaID() string { return SchemaConst }

// Serialize writes expression and requirements, then the base range.
func (d *ConstDependency) Serialize(w *serialization.Writer) {
	w.WriteString(d.Expression)
	var reqs []string
	if d.Requirements != nil {
		reqs = make([]string, len(d.Requirements))
		for i, req := range d.Requirements {
			reqs[i] = string(req)
		}
	}
	w.WriteStrings(reqs)
	d.Base.serialize(w)
}

// Deserialize reads fields in Serialize order.
func (d *ConstDependency) Deserialize(r *serialization.Reader) {
	d.Expression = r.ReadString()
	if reqs := r.ReadStrings(); reqs != nil {
		d.Requirements = make([]runtime.Requirement, len(reqs))
		for i, req := range reqs {
			d.Requirements[i] = runtime.Requirement(req)
		}
	} else {
		d.Requirements = nil
	}
	d.Base.deserialize(r)
}
