package template

import (
	"sort"
	"strings"

	"github.com/wippyai/depgen/dependency"
	"github.com/wippyai/depgen/source"
)

// Template is the code generation routine of one dependency variant.
//
// Templates are stateless and shared. Apply must only touch src and the
// per-module state reachable from ctx.
type Template interface {
	Apply(dep dependency.Dependency, src *source.ReplaceSource, ctx *Context) error
}

// Func is an adapter to use ordinary functions as Templates.
//
// Example:
//
//	r.RegisterFunc(dependency.KindModule, func(dependency.Dependency, *source.ReplaceSource, *Context) error {
//	    return nil
//	}, "module")
type Func func(dep dependency.Dependency, src *source.ReplaceSource, ctx *Context) error

// Apply implements Template.
func (f Func) Apply(dep dependency.Dependency, src *source.ReplaceSource, ctx *Context) error {
	return f(dep, src, ctx)
}

type entry struct {
	tmpl Template
	name string
}

// Registry maps dependency variants to their templates.
//
// Populate it before generation starts; lookups are then safe from any
// number of goroutines.
type Registry struct {
	entries map[dependency.Kind]entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[dependency.Kind]entry)}
}

// Register binds tmpl to kind, replacing any earlier binding.
// The name is only used in diagnostics.
func (r *Registry) Register(kind dependency.Kind, tmpl Template, name string) {
	r.entries[kind] = entry{tmpl: tmpl, name: name}
}

// RegisterFunc registers a function as the template for kind.
func (r *Registry) RegisterFunc(kind dependency.Kind, fn func(dependency.Dependency, *source.ReplaceSource, *Context) error, name string) {
	r.Register(kind, Func(fn), name)
}

// Get returns the template for kind, or nil if none is registered.
func (r *Registry) Get(kind dependency.Kind) Template {
	return r.entries[kind].tmpl
}

// Has reports whether kind has a template.
func (r *Registry) Has(kind dependency.Kind) bool {
	return r.entries[kind].tmpl != nil
}

// Name returns the diagnostic name registered for kind.
func (r *Registry) Name(kind dependency.Kind) string {
	return r.entries[kind].name
}

// Missing returns the kinds that have no template.
//
// Use it to verify a registry covers every variant before generation.
func (r *Registry) Missing(kinds []dependency.Kind) []dependency.Kind {
	var missing []dependency.Kind
	for _, k := range kinds {
		if !r.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Fingerprint lists the registered kind=name pairs ordered by kind.
// Registering a different template under the same name does not change it.
func (r *Registry) Fingerprint() string {
	kinds := make([]dependency.Kind, 0, len(r.entries))
	for k, e := range r.entries {
		if e.tmpl != nil {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var b strings.Builder
	for i, k := range kinds {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k.String())
		b.WriteByte('=')
		b.WriteString(r.entries[k].name)
	}
	return b.String()
}

// DefaultRegistry returns a registry with a template for every variant.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(dependency.KindModule, Func(applyModule), "module")
	r.Register(dependency.KindProvided, Func(applyProvided), "provided")
	r.Register(dependency.KindRequire, Func(applyRequire), "require")
	r.Register(dependency.KindConst, Func(applyConst), "const")
	return r
}
