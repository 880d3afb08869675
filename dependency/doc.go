// Package dependency defines the references one module makes to another.
//
// A Dependency is created once by the parser with the byte range it covers
// in the owning module's original text. The set of variants is closed:
//
//   - ModuleDependency: a plain edge to another module; emits nothing itself
//   - ProvidedDependency: a free identifier bound to another module's exports
//   - RequireDependency: a require("...") call replaced by an access expression
//   - ConstDependency: a range replaced by a fixed expression
//
// Each variant reports a Kind tag. Code generation dispatches on the tag
// through template.Registry, and the persistent cache selects the variant's
// schema by SchemaID, so neither needs type switches over the variants.
//
// Dependencies are not compared structurally; a dependency's identity is its
// position in the owning module's dependency list.
package dependency
