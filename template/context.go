package template

import (
	"github.com/wippyai/depgen"
	"github.com/wippyai/depgen/dependency"
	"github.com/wippyai/depgen/initfragment"
	"github.com/wippyai/depgen/runtime"
)

// ModuleGraph answers which module a dependency resolved to.
type ModuleGraph interface {
	// Module returns the resolved module, or nil when resolution failed.
	Module(dep dependency.Dependency) depgen.Module
}

// AccessHelper renders the expression that evaluates to a module's exports.
// *runtime.Template implements it.
type AccessHelper interface {
	ModuleExports(opts runtime.ModuleExportsOptions) string
}

// Fingerprinter is implemented by helpers whose output depends on
// configuration. The fingerprint keys cached output to that configuration.
type Fingerprinter interface {
	Fingerprint() string
}

// Context is the per-module state a template reads and writes.
//
// Module, ModuleGraph, ChunkGraph and Runtime are read-only. Fragments and
// Requirements belong to the module being generated.
type Context struct {
	Module      depgen.Module
	ModuleGraph ModuleGraph
	ChunkGraph  depgen.ChunkGraph
	Runtime     AccessHelper
	Fragments   *initfragment.Sink
	// Requirements collects what the current Apply needs. The caller hands
	// each Apply a fresh set and merges it into the module's set afterwards.
	Requirements runtime.Requirements
}

// ModuleID returns the owning module's identifier, or "" without one.
func (c *Context) ModuleID() string {
	if c.Module == nil {
		return ""
	}
	return c.Module.Identifier()
}

// moduleExports renders the access expression for dep's resolved module.
func (c *Context) moduleExports(dep dependency.Dependency) string {
	var mod depgen.Module
	if c.ModuleGraph != nil {
		mod = c.ModuleGraph.Module(dep)
	}
	return c.Runtime.ModuleExports(runtime.ModuleExportsOptions{
		Module:       mod,
		ChunkGraph:   c.ChunkGraph,
		Requirements: c.Requirements,
		Request:      dep.Request(),
	})
}
