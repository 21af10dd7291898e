// Package assistant implements the news chat assistant.
//
// Three modes control how much platform data backs a reply: "none" answers
// from general knowledge, "now" grounds the reply in whatever page the user
// is looking at, and "all" retrieves related articles from the archive
// before answering.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/vector"
)

// Mode selects the grounding strategy.
type Mode string

const (
	ModeNone Mode = "none"
	ModeNow  Mode = "now"
	ModeAll  Mode = "all"
)

// Retriever is the article lookup surface the assistant needs for retrieval.
type Retriever interface {
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	SimilarByVector(ctx context.Context, vec vector.Vector, excludeID int64, limit int) ([]models.Article, error)
}

// Searcher runs keyword queries against the article index.
type Searcher interface {
	SearchArticles(ctx context.Context, query string, limit int) ([]models.Article, error)
}

// Request is one chat turn.
type Request struct {
	Message   string       `json:"message" binding:"required"`
	Mode      Mode         `json:"mode"`
	SessionID string       `json:"session_id"`
	Context   *PageContext `json:"context"`
}

// Response is the assistant's reply.
type Response struct {
	Reply     string `json:"response"`
	SessionID string `json:"session_id"`
	Error     bool   `json:"error"`
}

// Service generates assistant replies with Gemini.
type Service struct {
	client    *genai.Client
	chatModel string
	retriever Retriever
	searcher  Searcher
	timeout   time.Duration
}

// NewService builds the assistant service.
func NewService(client *genai.Client, chatModel string, retriever Retriever, searcher Searcher) *Service {
	return &Service{
		client:    client,
		chatModel: chatModel,
		retriever: retriever,
		searcher:  searcher,
		timeout:   30 * time.Second,
	}
}

const systemPrompt = `당신은 뉴스 플랫폼의 AI 어시스턴트입니다.
친근하고 도움이 되는 톤으로 답변하며, 정확한 정보를 제공하는 것이 중요합니다.
한국어로 자연스럽게 대화하세요.`

// Reply processes one chat message. A missing session ID gets a fresh one;
// unknown modes fall back to plain conversation.
func (s *Service) Reply(ctx context.Context, profile *UserProfile, req Request) Response {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	mode := req.Mode
	if mode != ModeNow && mode != ModeAll {
		mode = ModeNone
	}

	var prompt string
	switch mode {
	case ModeNow:
		prompt = s.promptFromPage(req.Message, req.Context, profile)
	case ModeAll:
		prompt = s.promptFromArchive(ctx, req.Message, req.Context, profile)
	default:
		prompt = promptPlain(req.Message)
	}

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant generation failed: %v", err)
		return Response{
			Reply:     "죄송합니다. 일시적인 오류가 발생했습니다. 다시 시도해 주세요.",
			SessionID: sessionID,
			Error:     true,
		}
	}

	return Response{Reply: reply, SessionID: sessionID}
}

func promptPlain(message string) string {
	return fmt.Sprintf(`사용자 메시지: %s

뉴스 플랫폼의 AI 어시스턴트로서 친근하고 자연스러운 대화를 나누세요.
뉴스나 시사 관련 질문이면 일반적인 지식으로 답변하고,
일상적인 대화도 자연스럽게 응답해주세요.`, message)
}

// promptFromPage builds the "now" mode prompt from the page the user is on.
func (s *Service) promptFromPage(message string, page *PageContext, profile *UserProfile) string {
	summary := page.Analyze()

	var b strings.Builder
	switch page.Type() {
	case PageDetail:
		writeDetailPrompt(&b, message, page)
	case PageSearch:
		fmt.Fprintf(&b, "사용자가 검색페이지에서 질문했습니다: %s\n\n", message)
		fmt.Fprintf(&b, "검색어: %q\n검색 결과: %d개\n\n검색된 기사들:\n%s\n",
			page.SearchQuery, summary.TotalArticles, summary.FormatArticles())
	case PageHome:
		fmt.Fprintf(&b, "사용자가 홈페이지에서 질문했습니다: %s\n\n", message)
		fmt.Fprintf(&b, "현재 홈페이지 뉴스 목록:\n%s\n\n", summary.FormatArticles())
		fmt.Fprintf(&b, "주요 카테고리: %s\n주요 키워드: %s\n",
			formatCounts(summary.TopCategories), formatCounts(summary.TopKeywords))
	default:
		fmt.Fprintf(&b, "사용자 질문: %s\n\n페이지 정보:\n%s\n", message, summary.FormatArticles())
	}

	if profile != nil {
		fmt.Fprintf(&b, "\n사용자 선호도: %s\n", profile.Format())
	}
	b.WriteString("\n위의 정보를 바탕으로 도움이 되는 답변을 해주세요.")
	return b.String()
}

func writeDetailPrompt(b *strings.Builder, message string, page *PageContext) {
	article := page.Article
	fmt.Fprintf(b, "사용자가 뉴스 상세페이지에서 질문했습니다: %s\n\n", message)
	if article != nil {
		fmt.Fprintf(b, "현재 기사 상세 정보:\n제목: %s\n카테고리: %s\n작성자: %s\n요약: %s\n",
			article.Title, article.Category, article.Author, article.Summary)
		if article.Content != "" {
			fmt.Fprintf(b, "\n기사 전체 내용:\n%s\n", truncate(article.Content, 1000))
		}
	}
	if len(page.SimilarArticles) > 0 {
		fmt.Fprintf(b, "\n유사 기사들 (%d개):\n%s\n",
			len(page.SimilarArticles), formatRefs(page.SimilarArticles))
	}
	if len(page.Comments) > 0 {
		fmt.Fprintf(b, "\n최근 댓글들:\n%s\n", formatComments(page.Comments))
	}
	b.WriteString("\n요약을 요청하면 핵심 내용을 간결하게 정리해주고,\n관련 질문이면 기사 내용을 참조하여 답변해주세요.")
}

// promptFromArchive builds the "all" mode prompt: retrieve related articles
// first, then cite them in the prompt. Retrieval failure degrades to the
// page-grounded prompt rather than failing the request.
func (s *Service) promptFromArchive(ctx context.Context, message string, page *PageContext, profile *UserProfile) string {
	articles, err := s.retrieve(ctx, message)
	if err != nil {
		log.Printf("assistant retrieval failed, answering from page context: %v", err)
		return s.promptFromPage(message, page, profile)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "사용자 질문: %s\n\n", message)
	fmt.Fprintf(&b, "관련 뉴스 기사들:\n%s\n", formatRetrieved(articles))
	if page != nil {
		summary := page.Analyze()
		fmt.Fprintf(&b, "\n현재 페이지 정보:\n%s\n", summary.FormatArticles())
	}
	if profile != nil {
		fmt.Fprintf(&b, "\n사용자 선호도: %s\n", profile.Format())
	}
	b.WriteString(`
위의 뉴스 기사들을 참고하여 정확하고 상세한 답변을 해주세요.
기사의 내용을 인용할 때는 어떤 기사에서 나온 정보인지 명시해주세요.`)
	return b.String()
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	content := genai.NewContentFromText(prompt, genai.RoleUser)

	resp, err := s.client.Models.GenerateContent(ctx, s.chatModel, []*genai.Content{content}, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
