package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{
			name:  "short text unchanged",
			input: "기준금리 인상",
			max:   100,
			want:  "기준금리 인상",
		},
		{
			name:  "exact rune count unchanged",
			input: "가나다",
			max:   3,
			want:  "가나다",
		},
		{
			name:  "hangul cut on rune boundary",
			input: strings.Repeat("가", 10),
			max:   4,
			want:  "가가가가",
		},
		{
			name:  "ascii cut",
			input: "abcdefgh",
			max:   5,
			want:  "abcde",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateRunes produced invalid UTF-8: %q", got)
			}
		})
	}
}
