package assistant

import (
	"reflect"
	"testing"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected Intent
	}{
		{"search request", "금리 관련 기사 검색해줘", IntentSearch},
		{"recommendation request", "나한테 맞는 뉴스 추천해줘", IntentRecommend},
		{"analysis request", "이번 주 뉴스 통계 보여줘", IntentAnalysis},
		{"article question", "이 기사 내용이 뭐야", IntentArticle},
		{"general question", "안녕하세요", IntentGeneral},
		{"empty message", "", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectIntent(tt.message)
			if got != tt.expected {
				t.Errorf("DetectIntent(%q) = %q, expected %q", tt.message, got, tt.expected)
			}
		})
	}
}

func TestExtractSearchTerms(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{
			name:     "drops stop words",
			message:  "삼성전자 반도체 관련 뉴스 검색 해줘",
			expected: []string{"삼성전자", "반도체"},
		},
		{
			name:     "caps at three terms",
			message:  "금리 환율 주가 부동산 전망",
			expected: []string{"금리", "환율", "주가"},
		},
		{
			name:     "all stop words yields nothing",
			message:  "뉴스 검색 해줘",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSearchTerms(tt.message)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractSearchTerms(%q) = %v, expected %v", tt.message, got, tt.expected)
			}
		})
	}
}
