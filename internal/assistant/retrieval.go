package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/newsloop/news-api/internal/models"
)

const retrievalLimit = 10

// retrieve finds articles relevant to the question: a keyword search first,
// then expansion through the top hit's embedding neighbors, deduplicated.
func (s *Service) retrieve(ctx context.Context, message string) ([]models.Article, error) {
	terms := ExtractSearchTerms(message)
	query := strings.Join(terms, " ")
	if query == "" {
		query = message
	}

	hits, err := s.searcher.SearchArticles(ctx, query, retrievalLimit)
	if err != nil {
		return nil, fmt.Errorf("keyword retrieval failed: %w", err)
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("no articles matched %q", query)
	}

	articles := hits

	// Expand through vector neighbors of the best hit when it has an
	// embedding.
	first, err := s.retriever.GetArticle(ctx, hits[0].ID)
	if err == nil && !first.Embedding.IsZero() {
		similar, err := s.retriever.SimilarByVector(ctx, first.Embedding, first.ID, 5)
		if err == nil {
			articles = append(articles, similar...)
		}
	}

	seen := make(map[int64]bool, len(articles))
	unique := make([]models.Article, 0, retrievalLimit)
	for _, a := range articles {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		unique = append(unique, a)
		if len(unique) >= retrievalLimit {
			break
		}
	}

	return unique, nil
}

func formatRetrieved(articles []models.Article) string {
	if len(articles) == 0 {
		return "관련 기사를 찾을 수 없습니다."
	}

	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, a.Category, a.Title)
		if a.Author != "" {
			fmt.Fprintf(&b, "   작성자: %s\n", a.Author)
		}
		fmt.Fprintf(&b, "   요약: %s\n", truncate(a.Summary, 200))
		if a.FullText != "" {
			fmt.Fprintf(&b, "   내용 일부: %s\n", truncate(a.FullText, 500))
		}
		fmt.Fprintf(&b, "   날짜: %s\n\n", a.UpdatedAt.Format("2006-01-02"))
	}
	return b.String()
}
