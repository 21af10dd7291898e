package utils

import "testing"

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "composed hangul unchanged",
			input:    "경제 뉴스",
			expected: "경제 뉴스",
		},
		{
			name:     "decomposed hangul composed",
			input:    "강", // 강 as jamo sequence
			expected: "강",
		},
		{
			name:     "whitespace collapsed",
			input:    "  삼성   전자  ",
			expected: "삼성 전자",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQuery(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeQuery(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
