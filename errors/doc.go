// Package errors provides structured error types for the depgen library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the owning module, the dependency request, the schema
// identifier involved in cache decoding, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnresolved).
//		Module("./src/index.js").
//		Request("lodash").
//		Detail("no module found").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unresolved("./src/index.js", "lodash")
//	err := errors.UnknownSchema("depgen/dependency/Foo")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
