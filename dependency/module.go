package dependency

import (
	"github.com/wippyai/depgen/hash"
	"github.com/wippyai/depgen/serialization"
)

// ModuleDependency references another module by request.
// The access-expression helper receives the request alongside the resolved module.
type ModuleDependency struct {
	Base
	Req string
}

// NewModule creates a ModuleDependency. rng may be nil.
func NewModule(request string, rng *Range) *ModuleDependency {
	return &ModuleDependency{Base: Base{Loc: rng}, Req: request}
}

// Kind implements Dependency.
func (d *ModuleDependency) Kind() Kind { return KindModule }

// Request returns the module request as written in source.
func (d *ModuleDependency) Request() string { return d.Req }

func (d *ModuleDependency) moduleRequest() string { return d.Req }

// UpdateHash implements Dependency. The referenced module's own content hash
// is folded in by the caller, not here.
func (d *ModuleDependency) UpdateHash(h hash.Hash) {
	hash.String(h, d.Req)
}

// SchemaID implements serialization.Serializable.
func (d *ModuleDependency) SchemaID() string { return SchemaModule }

// Serialize writes request, then the base range.
func (d *ModuleDependency) Serialize(w *serialization.Writer) {
	w.WriteString(d.Req)
	d.Base.serialize(w)
}

// Deserialize reads fields in Serialize order.
func (d *ModuleDependency) Deserialize(r *serialization.Reader) {
	d.Req = r.ReadString()
	d.Base.deserialize(r)
}
