package source

import "testing"

func TestReplaceSource(t *testing.T) {
	tests := []struct {
		name  string
		orig  string
		apply func(s *ReplaceSource)
		want  string
	}{
		{
			name:  "no edits",
			orig:  "use x; y",
			apply: func(*ReplaceSource) {},
			want:  "use x; y",
		},
		{
			name:  "single replace",
			orig:  "use x; y",
			apply: func(s *ReplaceSource) { s.Replace(7, 8, "x") },
			want:  "use x; x",
		},
		{
			name: "grow and shrink",
			orig: "a(b)c",
			apply: func(s *ReplaceSource) {
				s.Replace(0, 1, "alpha")
				s.Replace(2, 3, "")
			},
			want: "alpha()c",
		},
		{
			name: "reverse order",
			orig: "0123456789",
			apply: func(s *ReplaceSource) {
				s.Replace(8, 9, "E")
				s.Replace(1, 2, "A")
				s.Replace(4, 6, "C")
			},
			want: "0A23C67E9",
		},
		{
			name: "insert before replace at same position",
			orig: "abc",
			apply: func(s *ReplaceSource) {
				s.Replace(1, 2, "B")
				s.Insert(1, "[")
				s.Insert(1, "(")
			},
			want: "a[(Bc",
		},
		{
			name:  "insert at end",
			orig:  "abc",
			apply: func(s *ReplaceSource) { s.Insert(3, ";") },
			want:  "abc;",
		},
		{
			name:  "replace whole text",
			orig:  "abc",
			apply: func(s *ReplaceSource) { s.Replace(0, 3, "xyz!") },
			want:  "xyz!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.orig)
			tt.apply(s)
			if got := s.Source(); got != tt.want {
				t.Errorf("Source: got %q, want %q", got, tt.want)
			}
			if got := s.Size(); got != len(tt.want) {
				t.Errorf("Size: got %d, want %d", got, len(tt.want))
			}
			if s.Original() != tt.orig {
				t.Errorf("Original: got %q, want %q", s.Original(), tt.orig)
			}
		})
	}
}

func TestReplaceOrderIndependent(t *testing.T) {
	edits := [][3]any{{0, 1, "A"}, {3, 5, "DE!"}, {7, 8, ""}}
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}, {2, 0, 1}}

	var first string
	for i, order := range orders {
		s := New("abcdefgh")
		for _, idx := range order {
			e := edits[idx]
			s.Replace(e[0].(int), e[1].(int), e[2].(string))
		}
		got := s.Source()
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Errorf("order %v: got %q, want %q", order, got, first)
		}
	}
	if first != "AbcDE!fg" {
		t.Errorf("Source: got %q", first)
	}
}

func TestCloneIsolation(t *testing.T) {
	orig := New("use x; y")
	orig.Replace(0, 3, "let")

	clone := orig.Clone()
	clone.Replace(7, 8, "x")
	orig.Replace(4, 5, "z")

	if got := clone.Source(); got != "let x; x" {
		t.Errorf("clone: got %q, want %q", got, "let x; x")
	}
	if got := orig.Source(); got != "let z; y" {
		t.Errorf("original: got %q, want %q", got, "let z; y")
	}

	second := clone.Clone()
	second.Insert(0, "!")
	if got := clone.Source(); got != "let x; x" {
		t.Errorf("clone after second clone write: got %q", got)
	}
	if got := second.Source(); got != "!let x; x" {
		t.Errorf("second clone: got %q", got)
	}
}
