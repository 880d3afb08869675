package serialization

import (
	"bytes"
	"fmt"

	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/internal/binary"
)

// Value tags written ahead of every field.
const (
	tagNull byte = iota
	tagBool
	tagInt
	tagString
	tagStrings
	tagInts
	tagObject
)

var tagNames = [...]string{"null", "bool", "int", "string", "strings", "ints", "object"}

func tagName(tag byte) string {
	if int(tag) < len(tagNames) {
		return tagNames[tag]
	}
	return fmt.Sprintf("tag(0x%02x)", tag)
}

// Writer appends tagged fields to a stream.
// The first error (an unregistered nested object) is kept and reported by Err.
type Writer struct {
	w   *binary.Writer
	reg *Registry
	err error
}

// WriteNull writes an explicit absent value.
func (w *Writer) WriteNull() {
	w.w.Byte(tagNull)
}

// WriteBool writes a boolean field.
func (w *Writer) WriteBool(v bool) {
	w.w.Byte(tagBool)
	if v {
		w.w.Byte(1)
	} else {
		w.w.Byte(0)
	}
}

// WriteInt writes a signed integer field.
func (w *Writer) WriteInt(v int) {
	w.w.Byte(tagInt)
	w.w.WriteS64(int64(v))
}

// WriteString writes a string field.
func (w *Writer) WriteString(s string) {
	w.w.Byte(tagString)
	w.w.WriteString(s)
}

// WriteStrings writes a string list. A nil slice is written as null so it reads
// back as nil, while an empty non-nil slice reads back empty.
func (w *Writer) WriteStrings(v []string) {
	if v == nil {
		w.WriteNull()
		return
	}
	w.w.Byte(tagStrings)
	w.w.WriteU32(uint32(len(v)))
	for _, s := range v {
		w.w.WriteString(s)
	}
}

// WriteInts writes an integer list with the same null convention as WriteStrings.
func (w *Writer) WriteInts(v []int) {
	if v == nil {
		w.WriteNull()
		return
	}
	w.w.Byte(tagInts)
	w.w.WriteU32(uint32(len(v)))
	for _, n := range v {
		w.w.WriteS64(int64(n))
	}
}

// WriteObject writes a nested registered object: schema id, version, then its fields.
// A nil object is written as null.
func (w *Writer) WriteObject(obj Serializable) {
	if obj == nil {
		w.WriteNull()
		return
	}
	id := obj.SchemaID()
	schema, ok := w.reg.Lookup(id)
	if !ok {
		if w.err == nil {
			w.err = errors.New(errors.PhaseSerialize, errors.KindUnknownSchema).
				Schema(id).
				Detail("schema not registered").
				Build()
		}
		w.WriteNull()
		return
	}
	w.w.Byte(tagObject)
	w.w.WriteString(id)
	w.w.WriteU32(schema.Version)
	obj.Serialize(w)
}

// Err returns the first error recorded while writing.
func (w *Writer) Err() error {
	return w.err
}

// Reader consumes tagged fields in the order they were written.
// The first failure is sticky: later reads return zero values and Err reports it.
type Reader struct {
	r   *binary.Reader
	reg *Registry
	err error
}

func newReader(data []byte, reg *Registry) *Reader {
	return &Reader{r: binary.NewReader(bytes.NewReader(data)), reg: reg}
}

// Err returns the first error encountered while reading.
func (r *Reader) Err() error {
	return r.err
}

// Fail records err unless an earlier error is already recorded.
// Deserialize implementations use it to reject semantically invalid fields.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// tag reads the next value tag. It reports false when the value is null
// (and nullable is set) or when reading failed.
func (r *Reader) tag(want byte, nullable bool) bool {
	if r.err != nil {
		return false
	}
	pos := r.r.Position()
	t, err := r.r.ReadByte()
	if err != nil {
		r.Fail(r.r.WrapError(tagName(want), err))
		return false
	}
	if t == want {
		return true
	}
	if t == tagNull && nullable {
		return false
	}
	r.Fail(errors.TypeMismatch(pos, tagName(t), tagName(want)))
	return false
}

// ReadBool reads a boolean field.
func (r *Reader) ReadBool() bool {
	if !r.tag(tagBool, false) {
		return false
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.Fail(r.r.WrapError("bool", err))
		return false
	}
	return b != 0
}

// ReadInt reads a signed integer field.
func (r *Reader) ReadInt() int {
	if !r.tag(tagInt, false) {
		return 0
	}
	v, err := r.r.ReadS64()
	if err != nil {
		r.Fail(r.r.WrapError("int", err))
		return 0
	}
	return int(v)
}

// ReadString reads a string field.
func (r *Reader) ReadString() string {
	if !r.tag(tagString, false) {
		return ""
	}
	return r.rawString("string")
}

// ReadNullableString reads a string field that may have been written as null.
func (r *Reader) ReadNullableString() (string, bool) {
	if !r.tag(tagString, true) {
		return "", false
	}
	return r.rawString("string"), r.err == nil
}

// ReadStrings reads a string list; null reads back as nil.
func (r *Reader) ReadStrings() []string {
	if !r.tag(tagStrings, true) {
		return nil
	}
	n := r.length("strings")
	out := make([]string, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.rawString("strings"))
	}
	if r.err != nil {
		return nil
	}
	return out
}

// ReadInts reads an integer list; null reads back as nil.
func (r *Reader) ReadInts() []int {
	if !r.tag(tagInts, true) {
		return nil
	}
	n := r.length("ints")
	out := make([]int, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		v, err := r.r.ReadS64()
		if err != nil {
			r.Fail(r.r.WrapError("ints", err))
			return nil
		}
		out = append(out, int(v))
	}
	return out
}

// ReadObject reads a nested registered object; null reads back as nil.
// Unknown schema ids and version mismatches are recorded as errors.
func (r *Reader) ReadObject() Serializable {
	return r.ReadObjectFunc(nil)
}

// ReadObjectFunc is ReadObject restricted to the schema ids accept allows.
// A rejected id fails the stream before the object is constructed. A nil
// accept allows every registered schema.
func (r *Reader) ReadObjectFunc(accept func(id string) bool) Serializable {
	if !r.tag(tagObject, true) {
		return nil
	}
	id := r.rawString("schema id")
	version, err := r.r.ReadU32()
	if err != nil {
		r.Fail(r.r.WrapError("schema version", err))
		return nil
	}
	if r.err != nil {
		return nil
	}
	if accept != nil && !accept(id) {
		r.Fail(errors.New(errors.PhaseDeserialize, errors.KindTypeMismatch).
			Schema(id).
			Detail("schema not allowed at position %d", r.r.Position()).
			Build())
		return nil
	}
	schema, ok := r.reg.Lookup(id)
	if !ok {
		r.Fail(errors.UnknownSchema(id))
		return nil
	}
	if schema.Version != version {
		r.Fail(errors.SchemaVersion(id, version, schema.Version))
		return nil
	}
	obj := schema.New()
	obj.Deserialize(r)
	if r.err != nil {
		return nil
	}
	return obj
}

func (r *Reader) rawString(field string) string {
	s, err := r.r.ReadString()
	if err != nil {
		r.Fail(r.r.WrapError(field, err))
		return ""
	}
	return s
}

// maxListLen bounds list lengths read from untrusted cache bytes.
const maxListLen = 1 << 24

func (r *Reader) length(field string) int {
	n, err := r.r.ReadU32()
	if err != nil {
		r.Fail(r.r.WrapError(field, err))
		return 0
	}
	if n > maxListLen {
		r.Fail(errors.InvalidData(errors.PhaseDeserialize, fmt.Sprintf("%s length %d exceeds limit", field, n)))
		return 0
	}
	return int(n)
}
