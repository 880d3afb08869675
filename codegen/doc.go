// Package codegen drives per-module code generation.
//
// For each module the Generator:
//
//  1. resolves every module-bearing dependency through the module graph
//  2. folds the source, every dependency contribution and the resolved
//     module ids into the module hash
//  3. reuses a cached output when the hash matches
//  4. otherwise applies each dependency's template in source order against a
//     fresh buffer over the original text, merging runtime requirements
//     after each apply
//  5. merges init fragments, renders the final text and publishes it
//
// Modules are independent. Generate runs them on a bounded worker pool and
// reports per-module failures without stopping siblings. A module whose
// inputs change mid-pass can be invalidated; the stale pass discards its
// work instead of publishing.
package codegen
