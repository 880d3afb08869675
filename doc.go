// Package depgen turns parsed module dependencies into emitted bundle code.
//
// A bundler's parser records every reference one module makes to another
// (an import, a require call, a provided global) together with the byte range
// of that reference in the original text. depgen takes those dependencies,
// resolves them against the module graph, and rewrites the original text into
// final output without reparsing.
//
// # Architecture Overview
//
//	depgen/             Root package with the Module and ChunkGraph collaborator interfaces
//	├── dependency/     Dependency variants (provided, require, const, module)
//	├── source/         Copy-on-write replace buffer over the original text
//	├── initfragment/   Hoisted prologue/epilogue fragments and their ordering
//	├── template/       Variant -> apply routine registry and the apply context
//	├── runtime/        Access expressions and runtime requirement sets
//	├── hash/           xxhash64 digest and field helpers for hash contributions
//	├── serialization/  Tagged field stream and schema registry for the build cache
//	├── cache/          Build cache stores
//	├── codegen/        Per-module orchestration across parallel workers
//	└── errors/         Structured error types
//
// # Quick Start
//
//	gen := codegen.New(graph, chunks, codegen.DefaultOptions())
//
//	res, err := gen.Generate(ctx, []codegen.Input{{
//	    Module:       mod,
//	    Source:       "use x; y",
//	    Dependencies: []dependency.Dependency{
//	        dependency.NewProvided("lib", "x", nil, dependency.Range{Start: 7, End: 8}),
//	    },
//	}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(res.Outputs[mod.Identifier()].Source)
//
// # Determinism
//
// Output text and hashes do not depend on the order in which templates ran:
// fragments are merged by (stage, priority, first-seen index) and every
// dependency contributes to the module hash exactly once, in list order.
//
// # Thread Safety
//
// Modules are generated independently and may run on parallel workers.
// Within one module, dependencies are applied sequentially against a single
// buffer; a module's result is published only when its pass completes.
package depgen
