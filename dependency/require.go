package dependency

import (
	"github.com/wippyai/depgen/hash"
)

// RequireDependency is a require("...") call whose whole span is replaced by
// the resolved module's access expression.
type RequireDependency struct {
	ModuleDependency
}

// NewRequire creates a RequireDependency covering the call expression at rng.
func NewRequire(request string, rng Range) *RequireDependency {
	return &RequireDependency{
		ModuleDependency: ModuleDependency{Base: Base{Loc: rangePtr(rng)}, Req: request},
	}
}

// Kind implements Dependency.
func (d *RequireDependency) Kind() Kind { return KindRequire }

// UpdateHash implements Dependency.
func (d *RequireDependency) UpdateHash(h hash.Hash) {
	d.ModuleDependency.UpdateHash(h)
	d.Base.updateHash(h)
}

// SchemaID implements serialization.Serializable.
func (d *RequireDependency) SchemaID() string { return SchemaRequire }
