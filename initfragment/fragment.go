// Package initfragment collects the code snippets templates hoist to the top
// of a module and merges them into a deterministic prologue.
package initfragment

import (
	"sort"
	"strconv"
	"strings"
)

// Stage orders fragments coarsely. Lower stages render first.
type Stage int

const (
	StageConstants           Stage = 10
	StageAsyncBoundary       Stage = 20
	StageHarmonyExports      Stage = 30
	StageHarmonyImports      Stage = 40
	StageProvides            Stage = 50
	StageAsyncDependencies   Stage = 60
	StageAsyncHarmonyImports Stage = 70
)

var stageNames = map[Stage]string{
	StageConstants:           "constants",
	StageAsyncBoundary:       "async-boundary",
	StageHarmonyExports:      "harmony-exports",
	StageHarmonyImports:      "harmony-imports",
	StageProvides:            "provides",
	StageAsyncDependencies:   "async-dependencies",
	StageAsyncHarmonyImports: "async-harmony-imports",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "stage(" + strconv.Itoa(int(s)) + ")"
}

// Fragment is a snippet hoisted to the module prologue.
//
// Fragments sharing a non-empty Key are emitted once. EndContent, when set,
// goes into the epilogue in reverse fragment order.
type Fragment struct {
	Content    string
	Key        string
	EndContent string
	Stage      Stage
	Priority   int
}

// Sink is the append-only fragment list of one module.
// It is not safe for concurrent use; each module gets its own.
type Sink struct {
	frags []Fragment
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends f.
func (s *Sink) Add(f Fragment) {
	s.frags = append(s.frags, f)
}

// Len returns the number of fragments added.
func (s *Sink) Len() int {
	return len(s.frags)
}

// Fragments returns a copy of the added fragments in insertion order.
func (s *Sink) Fragments() []Fragment {
	out := make([]Fragment, len(s.frags))
	copy(out, s.frags)
	return out
}

// Merge orders frags by (Stage, Priority), keeping insertion order for ties,
// then drops every fragment whose non-empty Key was already seen.
// The input slice is not modified.
func Merge(frags []Fragment) []Fragment {
	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Stage != sorted[j].Stage {
			return sorted[i].Stage < sorted[j].Stage
		}
		return sorted[i].Priority < sorted[j].Priority
	})

	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, f := range sorted {
		if f.Key != "" {
			if _, dup := seen[f.Key]; dup {
				continue
			}
			seen[f.Key] = struct{}{}
		}
		out = append(out, f)
	}
	return out
}

// Render merges frags and wraps body with their contents:
// merged Content in order, then body, then EndContent in reverse order.
func Render(frags []Fragment, body string) string {
	merged := Merge(frags)

	var sb strings.Builder
	for _, f := range merged {
		sb.WriteString(f.Content)
	}
	sb.WriteString(body)
	for i := len(merged) - 1; i >= 0; i-- {
		sb.WriteString(merged[i].EndContent)
	}
	return sb.String()
}
