package utils

import (
	"strings"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text unchanged",
			input:    "기준금리가 동결되었다.",
			expected: "기준금리가 동결되었다.",
		},
		{
			name:     "bold and emphasis removed",
			input:    "**중요** 발표가 *오늘* 있었다.",
			expected: "중요 발표가 오늘 있었다.",
		},
		{
			name:     "heading markers removed",
			input:    "# 제목\n\n본문 내용.",
			expected: "제목\n\n본문 내용.",
		},
		{
			name:     "link keeps label only",
			input:    "[기사 원문](https://example.com/article)을 참조.",
			expected: "기사 원문을 참조.",
		},
		{
			name:     "inline code kept as text",
			input:    "값은 `42`이다.",
			expected: "값은 42이다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripMarkdown(tt.input)
			if got != tt.expected {
				t.Errorf("StripMarkdown(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripMarkdownList(t *testing.T) {
	got := StripMarkdown("- 첫째\n- 둘째")
	if !strings.Contains(got, "첫째") || !strings.Contains(got, "둘째") {
		t.Errorf("list items lost: %q", got)
	}
	if strings.Contains(got, "*") {
		t.Errorf("markdown syntax leaked: %q", got)
	}
}
