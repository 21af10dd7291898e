package indexer

import (
	"strings"
	"testing"
	"time"

	"github.com/newsloop/news-api/internal/models"
)

func TestEmbeddingText(t *testing.T) {
	article := models.Article{
		Title:     "기준금리 동결",
		Summary:   "한국은행이 기준금리를 동결했다.",
		FullText:  "## 배경\n\n**물가** 상승세가 둔화되었다.",
		UpdatedAt: time.Now(),
	}

	text := embeddingText(article)

	if !strings.Contains(text, "기준금리 동결") {
		t.Errorf("title missing from embedding text: %q", text)
	}
	if !strings.Contains(text, "한국은행이 기준금리를 동결했다.") {
		t.Errorf("summary missing from embedding text: %q", text)
	}
	if strings.Contains(text, "##") || strings.Contains(text, "**") {
		t.Errorf("markdown syntax leaked into embedding text: %q", text)
	}
	if !strings.Contains(text, "물가") {
		t.Errorf("body content missing from embedding text: %q", text)
	}
}

func TestEmbeddingTextWithoutBody(t *testing.T) {
	article := models.Article{Title: "제목", Summary: "요약"}

	text := embeddingText(article)
	if text != "제목\n\n요약" {
		t.Errorf("embeddingText = %q, expected title and summary only", text)
	}
}
