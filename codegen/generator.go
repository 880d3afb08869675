package codegen

import (
	"context"
	stderrors "errors"
	"fmt"
	goruntime "runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/depgen"
	"github.com/wippyai/depgen/cache"
	"github.com/wippyai/depgen/dependency"
	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/hash"
	"github.com/wippyai/depgen/initfragment"
	"github.com/wippyai/depgen/runtime"
	"github.com/wippyai/depgen/serialization"
	"github.com/wippyai/depgen/source"
	"github.com/wippyai/depgen/template"
)

// ErrInvalidated matches errors returned by a pass whose module was
// invalidated, or whose context was cancelled, before it could publish.
var ErrInvalidated = &errors.Error{Phase: errors.PhaseCodegen, Kind: errors.KindInvalidated}

// Options configures generation.
type Options struct {
	// Cache stores encoded outputs between passes. Nil disables caching.
	Cache cache.Store
	// Templates maps variants to apply routines. Nil means template.DefaultRegistry.
	Templates *template.Registry
	// Runtime renders access expressions. Nil means runtime.NewTemplate(runtime.DefaultOptions()).
	Runtime template.AccessHelper
	// Concurrency bounds parallel module workers in Generate.
	Concurrency int
}

// DefaultOptions returns default generation configuration.
func DefaultOptions() Options {
	return Options{
		Concurrency: goruntime.NumCPU(),
	}
}

// Input is one module to generate.
type Input struct {
	Module       depgen.Module
	Source       string
	Dependencies []dependency.Dependency
}

// Output is a module's published generation result.
type Output struct {
	Module       depgen.Module
	Requirements runtime.Requirements
	// Source is the prologue, edited body and epilogue.
	Source string
	// Hash is the hex module hash the output was generated for.
	Hash string
	// Fragments are the merged init fragments.
	Fragments []initfragment.Fragment
	// Cached reports whether the output came from the cache.
	Cached bool
}

// Result collects a Generate pass.
type Result struct {
	Outputs map[string]*Output
	// Errors holds per-module failures ordered by module id.
	Errors []error
}

// Generator generates module code. Safe for concurrent use.
type Generator struct {
	graph       template.ModuleGraph
	chunks      depgen.ChunkGraph
	templates   *template.Registry
	runtime     template.AccessHelper
	schemas     *serialization.Registry
	generations map[string]uint64
	options     Options
	mu          sync.Mutex
}

// New creates a Generator resolving dependencies through graph and module
// ids through chunks.
func New(graph template.ModuleGraph, chunks depgen.ChunkGraph, opts Options) *Generator {
	g := &Generator{
		graph:       graph,
		chunks:      chunks,
		templates:   opts.Templates,
		runtime:     opts.Runtime,
		schemas:     NewSchemaRegistry(),
		generations: make(map[string]uint64),
		options:     opts,
	}
	if g.templates == nil {
		g.templates = template.DefaultRegistry()
	}
	if g.runtime == nil {
		g.runtime = runtime.NewTemplate(runtime.DefaultOptions())
	}
	if g.options.Concurrency <= 0 {
		g.options.Concurrency = 1
	}
	return g
}

// Options returns the configuration.
func (g *Generator) Options() Options {
	return g.options
}

// Invalidate marks every in-flight pass of module id as stale.
func (g *Generator) Invalidate(id string) {
	g.mu.Lock()
	g.generations[id]++
	g.mu.Unlock()
	if g.options.Cache != nil {
		g.options.Cache.Delete(id)
	}
	Logger().Debug("module invalidated", zap.String("module", id))
}

func (g *Generator) generation(id string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generations[id]
}

// Generate runs every input on a bounded worker pool.
//
// A module's failure is recorded in Result.Errors and never stops its
// siblings. The returned error is non-nil only when ctx ends first.
func (g *Generator) Generate(ctx context.Context, inputs []Input) (*Result, error) {
	res := &Result{Outputs: make(map[string]*Output, len(inputs))}

	type failure struct {
		err    error
		module string
	}
	var (
		mu       sync.Mutex
		failures []failure
		seen     = make(map[string]struct{}, len(inputs))
	)

	var eg errgroup.Group
	eg.SetLimit(g.options.Concurrency)

	for i := range inputs {
		in := inputs[i]
		if in.Module == nil {
			mu.Lock()
			failures = append(failures, failure{err: errors.InvalidInput(errors.PhaseCodegen, "input without module")})
			mu.Unlock()
			continue
		}
		id := in.Module.Identifier()
		if _, dup := seen[id]; dup {
			mu.Lock()
			failures = append(failures, failure{
				module: id,
				err: errors.New(errors.PhaseCodegen, errors.KindInvalidInput).
					Module(id).Detail("duplicate module").Build(),
			})
			mu.Unlock()
			continue
		}
		seen[id] = struct{}{}

		eg.Go(func() error {
			out, err := g.GenerateModule(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, failure{module: id, err: err})
				return nil
			}
			res.Outputs[id] = out
			return nil
		})
	}
	_ = eg.Wait()

	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].module < failures[j].module
	})
	for _, f := range failures {
		res.Errors = append(res.Errors, f.err)
	}

	Logger().Debug("generation finished",
		zap.Int("modules", len(inputs)),
		zap.Int("published", len(res.Outputs)),
		zap.Int("failed", len(res.Errors)))

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// GenerateModule generates a single module.
func (g *Generator) GenerateModule(ctx context.Context, in Input) (*Output, error) {
	if in.Module == nil {
		return nil, errors.InvalidInput(errors.PhaseCodegen, "input without module")
	}
	id := in.Module.Identifier()
	start := g.generation(id)

	resolved, err := g.resolve(id, in.Dependencies)
	if err != nil {
		return nil, err
	}
	sum := g.moduleHash(in, resolved)

	if out := g.cached(id, sum, in.Module); out != nil {
		if err := g.checkCurrent(ctx, id, start); err != nil {
			return nil, err
		}
		return out, nil
	}

	out, err := g.build(ctx, id, in, sum)
	if err != nil {
		return nil, err
	}
	if err := g.checkCurrent(ctx, id, start); err != nil {
		Logger().Debug("discarding stale pass", zap.String("module", id), zap.Error(err))
		return nil, err
	}
	g.store(id, out, in.Dependencies)
	return out, nil
}

// resolve looks up every module-bearing dependency. It fails on the first
// dependency the graph cannot resolve.
func (g *Generator) resolve(id string, deps []dependency.Dependency) ([]depgen.Module, error) {
	var resolved []depgen.Module
	for _, dep := range deps {
		if _, ok := dep.(dependency.ModuleRequester); !ok {
			continue
		}
		var m depgen.Module
		if g.graph != nil {
			m = g.graph.Module(dep)
		}
		if m == nil {
			return nil, errors.Unresolved(id, dep.Request())
		}
		resolved = append(resolved, m)
	}
	return resolved, nil
}

func (g *Generator) moduleHash(in Input, resolved []depgen.Module) string {
	h := hash.New()
	hash.String(h, in.Source)
	dependency.UpdateAll(h, in.Dependencies)
	for _, m := range resolved {
		hash.String(h, m.Identifier())
		chunkID := "null"
		if g.chunks != nil {
			if cid, ok := g.chunks.ModuleID(m); ok {
				chunkID = cid
			}
		}
		hash.String(h, chunkID)
	}
	hash.String(h, g.runtimeFingerprint())
	hash.String(h, g.templates.Fingerprint())
	return h.Hex()
}

// runtimeFingerprint identifies the access helper's configuration. Helpers
// without a Fingerprint method are keyed by their type alone.
func (g *Generator) runtimeFingerprint() string {
	if f, ok := g.runtime.(template.Fingerprinter); ok {
		return fmt.Sprintf("%T:%s", g.runtime, f.Fingerprint())
	}
	return fmt.Sprintf("%T", g.runtime)
}

func (g *Generator) build(ctx context.Context, id string, in Input, sum string) (*Output, error) {
	src := source.New(in.Source)
	sink := initfragment.NewSink()
	reqs := runtime.NewRequirements()

	for _, dep := range applyOrder(in.Dependencies) {
		if err := ctx.Err(); err != nil {
			return nil, invalidated(id, err)
		}
		tmpl := g.templates.Get(dep.Kind())
		if tmpl == nil {
			return nil, errors.MissingTemplate(id, dep.Kind().String())
		}
		tctx := &template.Context{
			Module:       in.Module,
			ModuleGraph:  g.graph,
			ChunkGraph:   g.chunks,
			Runtime:      g.runtime,
			Fragments:    sink,
			Requirements: runtime.NewRequirements(),
		}
		if err := tmpl.Apply(dep, src, tctx); err != nil {
			return nil, err
		}
		reqs.Merge(tctx.Requirements)
	}

	merged := initfragment.Merge(sink.Fragments())
	return &Output{
		Module:       in.Module,
		Source:       initfragment.Render(merged, src.Source()),
		Fragments:    merged,
		Requirements: reqs,
		Hash:         sum,
	}, nil
}

// applyOrder sorts dependencies by range start. Range-less dependencies go
// first; ties keep list order.
func applyOrder(deps []dependency.Dependency) []dependency.Dependency {
	out := make([]dependency.Dependency, len(deps))
	copy(out, deps)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Range(), out[j].Range()
		switch {
		case ri == nil:
			return rj != nil
		case rj == nil:
			return false
		default:
			return ri.Start < rj.Start
		}
	})
	return out
}

func (g *Generator) checkCurrent(ctx context.Context, id string, start uint64) error {
	if err := ctx.Err(); err != nil {
		return invalidated(id, err)
	}
	if g.generation(id) != start {
		return errors.New(errors.PhaseCodegen, errors.KindInvalidated).
			Module(id).
			Detail("module changed during generation").
			Build()
	}
	return nil
}

func invalidated(id string, cause error) error {
	return errors.New(errors.PhaseCodegen, errors.KindInvalidated).
		Module(id).
		Cause(cause).
		Build()
}

// cached returns the stored output for id when its hash equals sum.
// Undecodable entries are dropped so the module rebuilds.
func (g *Generator) cached(id, sum string, mod depgen.Module) *Output {
	entry := g.loadEntry(id)
	if entry == nil {
		return nil
	}
	if entry.Hash != sum {
		Logger().Debug("cache entry stale", zap.String("module", id))
		return nil
	}
	Logger().Debug("cache hit", zap.String("module", id))
	return &Output{
		Module:       mod,
		Source:       entry.Source,
		Fragments:    entry.Fragments,
		Requirements: runtime.NewRequirements(entry.Requirements...),
		Hash:         entry.Hash,
		Cached:       true,
	}
}

func (g *Generator) loadEntry(id string) *Entry {
	if g.options.Cache == nil {
		return nil
	}
	data, ok := g.options.Cache.Get(id)
	if !ok {
		return nil
	}
	entry, err := decodeEntry(g.schemas, data)
	if err != nil {
		Logger().Warn("dropping undecodable cache entry",
			zap.String("module", id),
			zap.Error(err))
		g.options.Cache.Delete(id)
		return nil
	}
	return entry
}

func (g *Generator) store(id string, out *Output, deps []dependency.Dependency) {
	if g.options.Cache == nil {
		return
	}
	data, err := encodeEntry(g.schemas, &Entry{
		Hash:         out.Hash,
		Source:       out.Source,
		Requirements: out.Requirements.Sorted(),
		Fragments:    out.Fragments,
		Dependencies: deps,
	})
	if err != nil {
		Logger().Warn("failed to encode cache entry",
			zap.String("module", id),
			zap.Error(err))
		return
	}
	g.options.Cache.Put(id, data)
}

// RestoreDependencies returns the dependency list cached for module id.
func (g *Generator) RestoreDependencies(id string) ([]dependency.Dependency, error) {
	if g.options.Cache == nil {
		return nil, errors.New(errors.PhaseCache, errors.KindNotFound).Module(id).Detail("no cache configured").Build()
	}
	data, ok := g.options.Cache.Get(id)
	if !ok {
		return nil, errors.New(errors.PhaseCache, errors.KindNotFound).Module(id).Build()
	}
	entry, err := decodeEntry(g.schemas, data)
	if err != nil {
		return nil, errors.New(errors.PhaseCache, errors.KindInvalidData).Module(id).Cause(err).Build()
	}
	return entry.Dependencies, nil
}

// IsInvalidated reports whether err came from a discarded pass.
func IsInvalidated(err error) bool {
	return stderrors.Is(err, ErrInvalidated)
}
