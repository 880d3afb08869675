// Package serialization encodes dependency state for the persistent build cache.
//
// Objects are written as an ordered field stream. Every field carries a value
// tag, so absent (null) fields survive a round-trip and a reader that expects
// a string where an int was written fails instead of misreading bytes.
//
// Each object type registers a Schema: a stable identifier, a version, and a
// constructor. The identifier and version are written ahead of the fields;
// decoding an unknown identifier or a different version is rejected so the
// owning module is rebuilt rather than restored from stale bytes.
//
//	reg := serialization.NewRegistry()
//	reg.Register(serialization.Schema{ID: "depgen/dependency/ProvidedDependency", Version: 1, New: ...})
//
//	data, err := reg.Encode(dep)
//	objs, err := reg.Decode(data)
//
// Field order inside Serialize and Deserialize is the wire contract. Change
// the order or field set only together with a version bump.
package serialization
