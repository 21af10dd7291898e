package assistant

import "strings"

// Intent classifies what the user wants from a message.
type Intent string

const (
	IntentSearch    Intent = "search_request"
	IntentRecommend Intent = "recommendation_request"
	IntentAnalysis  Intent = "analysis_request"
	IntentArticle   Intent = "article_question"
	IntentGeneral   Intent = "general_question"
)

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentSearch, []string{"검색", "찾아", "찾기", "알려줘", "검색해", "찾아줘"}},
	{IntentRecommend, []string{"추천", "추천해", "추천해줘", "관심", "좋아할", "비슷한"}},
	{IntentAnalysis, []string{"분석", "통계", "요약", "정리", "어떤", "얼마나", "몇 개"}},
	{IntentArticle, []string{"기사", "뉴스", "내용", "어떻게", "왜", "언제", "어디서"}},
}

// DetectIntent does keyword matching over the message. First matching
// bucket wins, ordered most to least specific.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, group := range intentKeywords {
		for _, k := range group.keywords {
			if strings.Contains(lower, k) {
				return group.intent
			}
		}
	}
	return IntentGeneral
}

var searchStopWords = map[string]bool{
	"검색": true, "찾아": true, "찾기": true, "알려줘": true, "해줘": true,
	"대해": true, "관련": true, "뉴스": true, "기사": true,
}

// ExtractSearchTerms pulls up to three content words out of a message,
// dropping filler words around a search request.
func ExtractSearchTerms(message string) []string {
	var terms []string
	for _, word := range strings.Fields(message) {
		if searchStopWords[word] || len([]rune(word)) < 2 {
			continue
		}
		terms = append(terms, word)
		if len(terms) == 3 {
			break
		}
	}
	return terms
}
