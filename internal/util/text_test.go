package util

import "testing"

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		query string
		text  string
		want  float64
	}{
		{"moon landing", "the moon landing happened", 1.0},
		{"moon landing hoax", "the moon landing happened", 2.0 / 3.0},
		{"", "anything", 0},
		{"unrelated words", "nothing matches here", 0},
	}

	for _, tt := range tests {
		got := TokenOverlap(tt.query, tt.text)
		if got < tt.want-0.001 || got > tt.want+0.001 {
			t.Errorf("TokenOverlap(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
		}
	}
}
