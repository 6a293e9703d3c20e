package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"", 10, 10},
		{"x", 5, 5},
		{"-3", 1, -3},
		{"3.5", 7, 7},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("AtoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("hello", 10); got != "hello" {
		t.Errorf("unexpected truncation: %q", got)
	}
	if got := TruncateRunes("hello", 0); got != "hello" {
		t.Errorf("max<=0 must be a no-op, got %q", got)
	}
	if got := TruncateRunes("hello world", 5); got != "hello…" {
		t.Errorf("got %q", got)
	}
	// Multi-byte text must be cut on rune boundaries.
	if got := TruncateRunes("数学の勉強を頑張る", 3); got != "数学の…" {
		t.Errorf("got %q", got)
	}
}
