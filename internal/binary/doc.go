// Package binary provides the byte-level codec behind depgen's cache format.
//
// Integers are LEB128 encoded, strings are length-prefixed UTF-8, and the
// stream header uses fixed little-endian words:
//
//	w := binary.NewWriter()
//	w.WriteU32LE(magic)
//	w.WriteString("depgen/dependency/ProvidedDependency")
//	w.WriteS64(-1)
//
//	r := binary.NewReader(bytes.NewReader(w.Bytes()))
//	magic, err := r.ReadU32LE()
//
// Reader tracks its byte position so decode failures can report where the
// stream went wrong. This package is internal to depgen.
package binary
