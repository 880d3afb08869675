package runtime

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/depgen"
)

type testModule string

func (m testModule) Identifier() string { return string(m) }

type testChunks map[string]string

func (c testChunks) ModuleID(m depgen.Module) (string, bool) {
	id, ok := c[m.Identifier()]
	return id, ok
}

func TestRequirementsSet(t *testing.T) {
	r := NewRequirements(Global)
	r.Add(RequireFunction, Global)
	if r.Len() != 2 {
		t.Errorf("Len: got %d, want 2", r.Len())
	}
	if !r.Has(Global) || !r.Has(RequireFunction) {
		t.Error("Has should report added requirements")
	}
	if r.Has(ModuleCache) {
		t.Error("Has should not report missing requirements")
	}

	other := NewRequirements(ModuleCache)
	r.Merge(other)
	want := []Requirement{RequireFunction, ModuleCache, Global}
	if got := r.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted: got %v, want %v", got, want)
	}
}

func TestModuleExports(t *testing.T) {
	chunks := testChunks{"./lib.js": "./lib.js", "lodash": "42"}

	tests := []struct {
		name    string
		opts    Options
		module  depgen.Module
		request string
		want    string
		require bool
	}{
		{
			name:    "with path info",
			opts:    Options{PathInfo: true},
			module:  testModule("./lib.js"),
			request: "lib",
			want:    `__webpack_require__(/*! lib */ "./lib.js")`,
			require: true,
		},
		{
			name:    "without path info",
			opts:    Options{},
			module:  testModule("lodash"),
			request: "lodash",
			want:    `__webpack_require__("42")`,
			require: true,
		},
		{
			name:    "comment terminator in request",
			opts:    Options{PathInfo: true},
			module:  testModule("lodash"),
			request: "a*/b",
			want:    `__webpack_require__(/*! a*_/b */ "42")`,
			require: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := NewRequirements()
			got := NewTemplate(tt.opts).ModuleExports(ModuleExportsOptions{
				Module:       tt.module,
				ChunkGraph:   chunks,
				Request:      tt.request,
				Requirements: reqs,
			})
			if got != tt.want {
				t.Errorf("ModuleExports: got %s, want %s", got, tt.want)
			}
			if reqs.Has(RequireFunction) != tt.require {
				t.Errorf("RequireFunction recorded: got %v, want %v", reqs.Has(RequireFunction), tt.require)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	on := NewTemplate(Options{PathInfo: true}).Fingerprint()
	off := NewTemplate(Options{PathInfo: false}).Fingerprint()
	if on == off {
		t.Errorf("Fingerprint: got %q for both PathInfo settings", on)
	}
	if got := NewTemplate(DefaultOptions()).Fingerprint(); got != on {
		t.Errorf("Fingerprint(default): got %q, want %q", got, on)
	}
}

func TestModuleExportsMissing(t *testing.T) {
	rt := NewTemplate(DefaultOptions())
	reqs := NewRequirements()

	for _, m := range []depgen.Module{nil, testModule("not-in-chunks")} {
		got := rt.ModuleExports(ModuleExportsOptions{
			Module:       m,
			ChunkGraph:   testChunks{},
			Request:      "gone",
			Requirements: reqs,
		})
		if !strings.Contains(got, `"Cannot find module 'gone'"`) || !strings.Contains(got, "MODULE_NOT_FOUND") {
			t.Errorf("missing module expression: got %s", got)
		}
	}
	if reqs.Len() != 0 {
		t.Errorf("missing module should add no requirements, got %v", reqs.Sorted())
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", `"a"`},
		{"b c", `"b c"`},
		{`say "hi"`, `"say \"hi\""`},
		{"<&>", `"<&>"`},
		{"line\nbreak", `"line\nbreak"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}
