package dependency

import (
	"strings"

	"github.com/wippyai/depgen/hash"
	"github.com/wippyai/depgen/serialization"
)

// ProvidedDependency binds a free identifier to another module's exports.
//
// The usage site at Range is rewritten to Identifier, and a hoisted local
// `var Identifier = <exports><path>` is declared once per module.
type ProvidedDependency struct {
	ModuleDependency
	Identifier string
	// Path is applied to the exports as bracketed property accesses; nil means none.
	Path []string
}

// NewProvided creates a ProvidedDependency. Fields are stored verbatim.
func NewProvided(request, identifier string, path []string, rng Range) *ProvidedDependency {
	return &ProvidedDependency{
		ModuleDependency: ModuleDependency{Base: Base{Loc: rangePtr(rng)}, Req: request},
		Identifier:       identifier,
		Path:             path,
	}
}

// Kind implements Dependency.
func (d *ProvidedDependency) Kind() Kind { return KindProvided }

// UpdateHash implements Dependency.
func (d *ProvidedDependency) UpdateHash(h hash.Hash) {
	d.ModuleDependency.UpdateHash(h)
	hash.String(h, d.Identifier)
	if d.Path == nil {
		hash.String(h, "null")
		return
	}
	hash.String(h, strings.Join(d.Path, ","))
}

// SchemaID implements serialization.Serializable.
func (d *ProvidedDependency) SchemaID() string { return SchemaProvided }

// Serialize writes identifier, path and range, then the module request.
// The range is owned here, so the embedded ModuleDependency contributes only
// its request.
func (d *ProvidedDependency) Serialize(w *serialization.Writer) {
	w.WriteString(d.Identifier)
	w.WriteStrings(d.Path)
	d.Base.serialize(w)
	w.WriteString(d.Req)
}

// Deserialize reads fields in Serialize order.
func (d *ProvidedDependency) Deserialize(r *serialization.Reader) {
	d.Identifier = r.ReadString()
	d.Path = r.ReadStrings()
	d.Base.deserialize(r)
	d.Req = r.ReadString()
}
