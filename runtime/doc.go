// Package runtime builds the expressions emitted code uses to reach other
// modules, and tracks which runtime helpers that code depends on.
//
// A Requirement names one runtime capability (the require function, the
// global object, the module cache). Templates add the requirements their
// output needs to a Requirements set; the set is append-only, and the caller
// merges per-call sets into the module's set after each apply.
//
// Template is the default access-expression helper:
//
//	rt := runtime.NewTemplate(runtime.Options{PathInfo: true})
//	reqs := runtime.NewRequirements()
//	expr := rt.ModuleExports(runtime.ModuleExportsOptions{
//	    Module:       mod,
//	    ChunkGraph:   chunks,
//	    Request:      "lodash",
//	    Requirements: reqs,
//	})
//	// expr == `__webpack_require__(/*! lodash */ "./node_modules/lodash/lodash.js")`
package runtime
