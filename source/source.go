// Package source holds the editable view of a module's original text.
package source

import (
	"sort"
	"strings"
)

// edit replaces original[start:end] with text. Inserts have start == end.
type edit struct {
	start int
	end   int
	seq   int
	text  string
}

// ReplaceSource records edits against an immutable original text and
// renders the result on demand.
//
// Edits always address positions in the original text, so disjoint edits
// may be applied in any order. Overlapping or out-of-range edits produce
// undefined output.
//
// Clone is O(1): clones share the recorded edits until one side writes.
type ReplaceSource struct {
	original string
	edits    []edit
	shared   bool
	seq      int
}

// New wraps original text.
func New(original string) *ReplaceSource {
	return &ReplaceSource{original: original}
}

// Original returns the unedited text.
func (s *ReplaceSource) Original() string {
	return s.original
}

// Replace substitutes the original half-open span [start, end) with text.
func (s *ReplaceSource) Replace(start, end int, text string) {
	s.add(edit{start: start, end: end, text: text})
}

// Insert adds text before original position pos.
// Multiple inserts at one position render in call order.
func (s *ReplaceSource) Insert(pos int, text string) {
	s.add(edit{start: pos, end: pos, text: text})
}

func (s *ReplaceSource) add(e edit) {
	if s.shared {
		s.edits = append(make([]edit, 0, len(s.edits)+1), s.edits...)
		s.shared = false
	}
	e.seq = s.seq
	s.seq++
	s.edits = append(s.edits, e)
}

// Clone returns an independent copy sharing the current edits.
func (s *ReplaceSource) Clone() *ReplaceSource {
	s.shared = true
	return &ReplaceSource{original: s.original, edits: s.edits, shared: true, seq: s.seq}
}

// Len returns the number of recorded edits.
func (s *ReplaceSource) Len() int {
	return len(s.edits)
}

func (s *ReplaceSource) sorted() []edit {
	out := make([]edit, len(s.edits))
	copy(out, s.edits)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].start != out[j].start {
			return out[i].start < out[j].start
		}
		// Inserts render before a replace starting at the same position.
		iIns, jIns := out[i].start == out[i].end, out[j].start == out[j].end
		if iIns != jIns {
			return iIns
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Source renders the edited text.
func (s *ReplaceSource) Source() string {
	if len(s.edits) == 0 {
		return s.original
	}
	var sb strings.Builder
	sb.Grow(s.Size())
	pos := 0
	for _, e := range s.sorted() {
		if e.start > pos {
			sb.WriteString(s.original[pos:e.start])
		}
		sb.WriteString(e.text)
		if e.end > pos {
			pos = e.end
		}
	}
	if pos < len(s.original) {
		sb.WriteString(s.original[pos:])
	}
	return sb.String()
}

// Size returns the byte length Source would produce.
func (s *ReplaceSource) Size() int {
	n := len(s.original)
	for _, e := range s.edits {
		n += len(e.text) - (e.end - e.start)
	}
	return n
}
