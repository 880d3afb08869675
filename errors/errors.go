package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseResolve     Phase = "resolve"     // module graph lookup
	PhaseCodegen     Phase = "codegen"     // template apply and render
	PhaseSerialize   Phase = "serialize"   // cache encode
	PhaseDeserialize Phase = "deserialize" // cache decode
	PhaseCache       Phase = "cache"       // cache store operations
	PhaseManifest    Phase = "manifest"    // build manifest loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnresolved      Kind = "unresolved"
	KindUnknownSchema   Kind = "unknown_schema"
	KindSchemaVersion   Kind = "schema_version"
	KindInvalidData     Kind = "invalid_data"
	KindTypeMismatch    Kind = "type_mismatch"
	KindMissingTemplate Kind = "missing_template"
	KindInvalidated     Kind = "invalidated"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
)

// Error is the structured error type used throughout depgen
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Module  string
	Request string
	Schema  string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Module != "" {
		b.WriteString(" in ")
		b.WriteString(e.Module)
	}

	if e.Request != "" || e.Schema != "" {
		b.WriteString(": ")
		if e.Request != "" && e.Schema != "" {
			fmt.Fprintf(&b, "request %q, schema %s", e.Request, e.Schema)
		} else if e.Request != "" {
			fmt.Fprintf(&b, "request %q", e.Request)
		} else {
			b.WriteString("schema ")
			b.WriteString(e.Schema)
		}
	}

	if e.Detail != "" {
		if e.Request != "" || e.Schema != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Module sets the owning module identifier
func (b *Builder) Module(id string) *Builder {
	b.err.Module = id
	return b
}

// Request sets the dependency request
func (b *Builder) Request(req string) *Builder {
	b.err.Request = req
	return b
}

// Schema sets the serialization schema identifier
func (b *Builder) Schema(id string) *Builder {
	b.err.Schema = id
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unresolved creates a resolution failure for a dependency request in a module
func Unresolved(module, request string) *Error {
	return &Error{
		Phase:   PhaseResolve,
		Kind:    KindUnresolved,
		Module:  module,
		Request: request,
		Detail:  "module not found",
	}
}

// UnknownSchema creates an error for a schema identifier with no registered reader
func UnknownSchema(id string) *Error {
	return &Error{
		Phase:  PhaseDeserialize,
		Kind:   KindUnknownSchema,
		Schema: id,
		Detail: "no reader registered",
	}
}

// SchemaVersion creates a version mismatch error for a known schema
func SchemaVersion(id string, got, want uint32) *Error {
	return &Error{
		Phase:  PhaseDeserialize,
		Kind:   KindSchemaVersion,
		Schema: id,
		Detail: fmt.Sprintf("persisted version %d, current version %d", got, want),
		Value:  got,
	}
}

// TypeMismatch creates an error for a field read with the wrong value tag
func TypeMismatch(position int, got, want string) *Error {
	return &Error{
		Phase:  PhaseDeserialize,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf("at position %d: got %s, want %s", position, got, want),
		Value:  position,
	}
}

// MissingTemplate creates an error for a dependency variant with no bound template
func MissingTemplate(module, variant string) *Error {
	return &Error{
		Phase:  PhaseCodegen,
		Kind:   KindMissingTemplate,
		Module: module,
		Detail: fmt.Sprintf("no template registered for %s", variant),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
