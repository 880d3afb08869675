package runtime

import (
	"sort"
)

// Requirement names a runtime capability emitted code depends on.
type Requirement string

const (
	RequireFunction Requirement = "__webpack_require__"
	ModuleCache     Requirement = "__webpack_require__.c"
	ModuleFactories Requirement = "__webpack_require__.m"
	Global          Requirement = "__webpack_require__.g"
	HasOwnProperty  Requirement = "__webpack_require__.o"
	Exports         Requirement = "__webpack_exports__"
	Module          Requirement = "module"
	ThisAsExports   Requirement = "top-level-this-exports"
)

// Requirements is an append-only set of requirements.
// The zero value is not usable; create one with NewRequirements.
type Requirements map[Requirement]struct{}

// NewRequirements creates an empty set containing reqs.
func NewRequirements(reqs ...Requirement) Requirements {
	r := make(Requirements, len(reqs))
	r.Add(reqs...)
	return r
}

// Add inserts reqs into the set.
func (r Requirements) Add(reqs ...Requirement) {
	for _, req := range reqs {
		r[req] = struct{}{}
	}
}

// Has reports whether req is in the set.
func (r Requirements) Has(req Requirement) bool {
	_, ok := r[req]
	return ok
}

// Merge adds every requirement of other into r.
func (r Requirements) Merge(other Requirements) {
	for req := range other {
		r[req] = struct{}{}
	}
}

// Len returns the number of requirements.
func (r Requirements) Len() int {
	return len(r)
}

// Sorted returns the requirements in lexical order.
func (r Requirements) Sorted() []Requirement {
	out := make([]Requirement, 0, len(r))
	for req := range r {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
