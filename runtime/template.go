package runtime

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/wippyai/depgen"
)

// Options configures the emitted access expressions.
type Options struct {
	// PathInfo prefixes module ids with a comment naming the request.
	PathInfo bool
}

// DefaultOptions returns default template configuration.
func DefaultOptions() Options {
	return Options{PathInfo: true}
}

// ModuleExportsOptions describes one access to another module's exports.
type ModuleExportsOptions struct {
	Module       depgen.Module
	ChunkGraph   depgen.ChunkGraph
	Requirements Requirements
	Request      string
}

// Template renders access expressions. Stateless after construction and
// safe for concurrent use.
type Template struct {
	options Options
}

// NewTemplate creates a Template with the given options.
func NewTemplate(opts Options) *Template {
	return &Template{options: opts}
}

// Fingerprint identifies the options that change emitted expressions.
// Generated code cached under one fingerprint is not valid under another.
func (t *Template) Fingerprint() string {
	return "pathinfo=" + strconv.FormatBool(t.options.PathInfo)
}

// ModuleExports returns the expression that evaluates to the exports of
// opts.Module and records the require function as a requirement.
// A nil module or one without an id yields an expression that throws
// MODULE_NOT_FOUND when evaluated.
func (t *Template) ModuleExports(opts ModuleExportsOptions) string {
	if opts.Module == nil || opts.ChunkGraph == nil {
		return t.MissingModule(opts.Request)
	}
	id, ok := opts.ChunkGraph.ModuleID(opts.Module)
	if !ok {
		return t.MissingModule(opts.Request)
	}
	if opts.Requirements != nil {
		opts.Requirements.Add(RequireFunction)
	}
	return string(RequireFunction) + "(" + t.comment(opts.Request) + Quote(id) + ")"
}

// MissingModule returns an expression that throws when the module behind
// request could not be found.
func (t *Template) MissingModule(request string) string {
	return "Object(" + t.throwMissingModuleFunction(request) + "())"
}

func (t *Template) throwMissingModuleFunction(request string) string {
	msg := "Cannot find module '" + request + "'"
	return "function webpackMissingModule() { var e = new Error(" + Quote(msg) +
		"); e.code = 'MODULE_NOT_FOUND'; throw e; }"
}

func (t *Template) comment(request string) string {
	if !t.options.PathInfo || request == "" {
		return ""
	}
	return "/*! " + strings.ReplaceAll(request, "*/", "*_/") + " */ "
}

// Quote returns s as a JavaScript string literal in JSON syntax.
// HTML-sensitive characters are left unescaped, matching JSON.stringify.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
