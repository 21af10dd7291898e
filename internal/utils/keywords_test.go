package utils

import (
	"reflect"
	"testing"
)

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "postgres array literal",
			input:    `{"금리", "환율","주가"}`,
			expected: []string{"금리", "환율", "주가"},
		},
		{
			name:     "plain comma list",
			input:    "금리, 환율",
			expected: []string{"금리", "환율"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "blank entries dropped",
			input:    "금리,, ,환율",
			expected: []string{"금리", "환율"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitKeywords(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitKeywords(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
