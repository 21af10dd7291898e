package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/newsloop/news-api/internal/utils"
)

// PageType identifies what the user is looking at.
type PageType string

const (
	PageHome    PageType = "home"
	PageSearch  PageType = "search"
	PageDetail  PageType = "detail"
	PageGeneral PageType = "general"
)

// ArticleRef is the client-supplied shape of an article on the current page.
type ArticleRef struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	Updated  string `json:"updated"`
}

// CommentRef is a comment shown on the current page.
type CommentRef struct {
	Content string `json:"content"`
}

// PageContext is the frontend's snapshot of the current page, sent along
// with "now" mode chat messages.
type PageContext struct {
	PageType        PageType     `json:"page_type"`
	Articles        []ArticleRef `json:"articles"`
	Article         *ArticleRef  `json:"article"`
	SimilarArticles []ArticleRef `json:"similar_articles"`
	Comments        []CommentRef `json:"comments"`
	SearchQuery     string       `json:"search_query"`
}

// Type infers the page type when the client did not label it: a single
// article with similar articles is a detail page, a search query marks a
// search page, a bare article list is the home feed.
func (p *PageContext) Type() PageType {
	if p == nil {
		return PageGeneral
	}
	if p.PageType != "" {
		return p.PageType
	}
	if p.Article != nil && p.SimilarArticles != nil {
		return PageDetail
	}
	if p.SearchQuery != "" {
		return PageSearch
	}
	if len(p.Articles) > 0 {
		return PageHome
	}
	return PageGeneral
}

type countPair struct {
	Value string
	Count int
}

// ContextSummary is the digest of a page used in prompts.
type ContextSummary struct {
	TotalArticles int
	TopCategories []countPair
	TopKeywords   []countPair
	Latest        time.Time
	Oldest        time.Time
	Articles      []ArticleRef
}

// Analyze digests the page's article list: category and keyword frequency,
// date range, and the first five articles for the prompt.
func (p *PageContext) Analyze() ContextSummary {
	if p == nil {
		return ContextSummary{}
	}

	summary := ContextSummary{TotalArticles: len(p.Articles)}

	categories := make(map[string]int)
	keywords := make(map[string]int)
	for _, a := range p.Articles {
		if a.Category != "" {
			categories[a.Category]++
		}
		for _, k := range utils.SplitKeywords(a.Keywords) {
			keywords[k]++
		}
		if a.Updated != "" {
			if ts, err := time.Parse(time.RFC3339, a.Updated); err == nil {
				if summary.Latest.IsZero() || ts.After(summary.Latest) {
					summary.Latest = ts
				}
				if summary.Oldest.IsZero() || ts.Before(summary.Oldest) {
					summary.Oldest = ts
				}
			}
		}
	}

	summary.TopCategories = topCounts(categories, 3)
	summary.TopKeywords = topCounts(keywords, 5)

	articles := p.Articles
	if len(articles) > 5 {
		articles = articles[:5]
	}
	summary.Articles = articles

	return summary
}

func topCounts(counts map[string]int, n int) []countPair {
	pairs := make([]countPair, 0, len(counts))
	for v, c := range counts {
		pairs = append(pairs, countPair{Value: v, Count: c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Value < pairs[j].Value
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// FormatArticles renders the summarized article list for a prompt.
func (s ContextSummary) FormatArticles() string {
	return formatRefs(s.Articles)
}

func formatRefs(articles []ArticleRef) string {
	if len(articles) == 0 {
		return "표시된 기사가 없습니다."
	}

	var b strings.Builder
	for i, a := range articles {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n", i+1, a.Category, a.Title, truncate(a.Summary, 150))
	}
	return b.String()
}

func formatComments(comments []CommentRef) string {
	var b strings.Builder
	for i, c := range comments {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "- %s\n", truncate(c.Content, 50))
	}
	return b.String()
}

// truncate cuts on rune boundaries so multibyte Hangul never gets split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func formatCounts(pairs []countPair) string {
	if len(pairs) == 0 {
		return "없음"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s(%d)", p.Value, p.Count)
	}
	return strings.Join(parts, ", ")
}
