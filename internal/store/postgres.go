package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/recommend"
	"github.com/newsloop/news-api/internal/vector"
)

// Postgres is the PostgreSQL-backed store. It implements
// recommend.SignalSource for the ranking engine.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a pgx pool and registers the pgvector codec.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() { p.pool.Close() }

// Ping checks connectivity (health endpoint).
func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

const articleColumns = `
	a.news_id, a.title, a.author, a.link, a.summary, a.category,
	COALESCE(a.keywords, ''), a.updated,
	COALESCE(v.cnt, 0) AS view_count, COALESCE(l.cnt, 0) AS like_count`

const engagementJoins = `
	LEFT JOIN (SELECT news_id, COUNT(*) AS cnt FROM views GROUP BY news_id) v ON v.news_id = a.news_id
	LEFT JOIN (SELECT news_id, COUNT(*) AS cnt FROM likes GROUP BY news_id) l ON l.news_id = a.news_id`

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	err := row.Scan(&a.ID, &a.Title, &a.Author, &a.Link, &a.Summary,
		&a.Category, &a.Keywords, &a.UpdatedAt, &a.ViewCount, &a.LikeCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}
	return &a, nil
}

// GetArticle returns one article with engagement counts; full text included.
func (p *Postgres) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`, a.full_text, a.embedding
		FROM news_articles a`+engagementJoins+`
		WHERE a.news_id = $1`, id)

	var (
		a   models.Article
		emb *pgvector.Vector
	)
	err := row.Scan(&a.ID, &a.Title, &a.Author, &a.Link, &a.Summary,
		&a.Category, &a.Keywords, &a.UpdatedAt, &a.ViewCount, &a.LikeCount, &a.FullText, &emb)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}
	if emb != nil {
		a.Embedding = vector.Vector(emb.Slice())
	}
	return &a, nil
}

// ListArticles returns articles in recency order, optionally filtered by
// category (empty = all).
func (p *Postgres) ListArticles(ctx context.Context, category string, limit, offset int) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM news_articles a` + engagementJoins
	args := []any{}
	if category != "" {
		query += ` WHERE a.category = $1 ORDER BY a.updated DESC LIMIT $2 OFFSET $3`
		args = append(args, category, limit, offset)
	} else {
		query += ` ORDER BY a.updated DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// Candidates builds a ranking candidate pool: most recent articles in the
// category (empty = all), with embeddings and engagement counts attached.
func (p *Postgres) Candidates(ctx context.Context, category string, limit int) ([]recommend.Candidate, error) {
	query := `
		SELECT a.news_id, a.category, a.embedding, a.updated,
		       COALESCE(v.cnt, 0), COALESCE(l.cnt, 0)
		FROM news_articles a` + engagementJoins
	args := []any{}
	if category != "" {
		query += ` WHERE a.category = $1 ORDER BY a.updated DESC LIMIT $2`
		args = append(args, category, limit)
	} else {
		query += ` ORDER BY a.updated DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// CandidatesByID hydrates specific articles (search hits, trending entries)
// into ranking candidates, preserving no particular order.
func (p *Postgres) CandidatesByID(ctx context.Context, ids []int64) ([]recommend.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := p.pool.Query(ctx, `
		SELECT a.news_id, a.category, a.embedding, a.updated,
		       COALESCE(v.cnt, 0), COALESCE(l.cnt, 0)
		FROM news_articles a`+engagementJoins+`
		WHERE a.news_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates by id: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows pgx.Rows) ([]recommend.Candidate, error) {
	var out []recommend.Candidate
	for rows.Next() {
		var (
			c   recommend.Candidate
			emb *pgvector.Vector
		)
		if err := rows.Scan(&c.ID, &c.Category, &emb, &c.UpdatedAt, &c.ViewCount, &c.LikeCount); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if emb != nil {
			c.Vector = vector.Vector(emb.Slice())
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ArticlesByID loads full articles for the given IDs, returned in the order
// requested. Missing IDs are skipped.
func (p *Postgres) ArticlesByID(ctx context.Context, ids []int64) ([]models.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := p.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM news_articles a`+engagementJoins+`
		WHERE a.news_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load articles by id: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]models.Article, len(ids))
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		byID[a.ID] = *a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ordered := make([]models.Article, 0, len(byID))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

// RecentLikes implements recommend.SignalSource: the user's most recent Like
// events joined with article category and embedding, most recent first.
func (p *Postgres) RecentLikes(ctx context.Context, userID int64, limit int) ([]recommend.Signal, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT a.news_id, a.category, a.embedding, lk.created_at
		FROM likes lk
		JOIN news_articles a ON a.news_id = lk.news_id
		WHERE lk.user_id = $1
		ORDER BY lk.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent likes: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

// RecentViews implements recommend.SignalSource for the secondary signal.
func (p *Postgres) RecentViews(ctx context.Context, userID int64, limit int) ([]recommend.Signal, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT a.news_id, a.category, a.embedding, vw.viewed_at
		FROM views vw
		JOIN news_articles a ON a.news_id = vw.news_id
		WHERE vw.user_id = $1
		ORDER BY vw.viewed_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent views: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

func scanSignals(rows pgx.Rows) ([]recommend.Signal, error) {
	var out []recommend.Signal
	for rows.Next() {
		var (
			s   recommend.Signal
			emb *pgvector.Vector
		)
		if err := rows.Scan(&s.ArticleID, &s.Category, &emb, &s.At); err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		if emb != nil {
			s.Vector = vector.Vector(emb.Slice())
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Like appends a like event. Liking twice is a no-op (unique per user+article).
func (p *Postgres) Like(ctx context.Context, userID, articleID int64) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO likes (user_id, news_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, news_id) DO NOTHING`, userID, articleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to record like: %w", err)
	}
	return nil
}

// Unlike removes the like event (preference events are deletable, never mutated).
func (p *Postgres) Unlike(ctx context.Context, userID, articleID int64) error {
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM likes WHERE user_id = $1 AND news_id = $2`, userID, articleID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordView stores a view event, first view per user+article only.
func (p *Postgres) RecordView(ctx context.Context, userID, articleID int64) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO views (user_id, news_id, viewed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, news_id) DO NOTHING`, userID, articleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// ListComments returns an article's comments, newest first.
func (p *Postgres) ListComments(ctx context.Context, articleID int64) ([]models.Comment, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT c.id, c.news_id, c.user_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.news_id = $1
		ORDER BY c.created_at DESC`, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// AddComment creates a comment and returns it with the author's username.
func (p *Postgres) AddComment(ctx context.Context, userID, articleID int64, content string) (*models.Comment, error) {
	row := p.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO comments (user_id, news_id, content, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, news_id, user_id, content, created_at
		)
		SELECT i.id, i.news_id, i.user_id, u.username, i.content, i.created_at
		FROM inserted i JOIN users u ON u.id = i.user_id`, userID, articleID, content)

	var c models.Comment
	if err := row.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &c, nil
}

// GetComment fetches a single comment.
func (p *Postgres) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT c.id, c.news_id, c.user_id, u.username, c.content, c.created_at
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`, id)

	var c models.Comment
	err := row.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &c, nil
}

// UpdateComment replaces a comment's content.
func (p *Postgres) UpdateComment(ctx context.Context, id int64, content string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE comments SET content = $2 WHERE id = $1`, id, content)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment.
func (p *Postgres) DeleteComment(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateUser registers a new account.
func (p *Postgres) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, username, email, password_hash, created_at`, username, email, passwordHash)

	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// GetUserByUsername fetches an account for login.
func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1`, username)

	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CategoryViewCounts aggregates the user's views per article category.
func (p *Postgres) CategoryViewCounts(ctx context.Context, userID int64) (map[string]int, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT a.category, COUNT(*)
		FROM views vw JOIN news_articles a ON a.news_id = vw.news_id
		WHERE vw.user_id = $1 AND a.category <> ''
		GROUP BY a.category`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category views: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// ViewedKeywords returns the raw keyword fields of every article the user
// viewed; frequency counting happens at the caller.
func (p *Postgres) ViewedKeywords(ctx context.Context, userID int64) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT COALESCE(a.keywords, '')
		FROM views vw JOIN news_articles a ON a.news_id = vw.news_id
		WHERE vw.user_id = $1 AND COALESCE(a.keywords, '') <> ''`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewed keywords: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan keywords: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// DailyViewCounts returns view counts for each of the last `days` days,
// oldest day first, including zero-count days.
func (p *Postgres) DailyViewCounts(ctx context.Context, userID int64, days int) ([]DayCount, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT d::date, COUNT(vw.user_id)
		FROM generate_series(CURRENT_DATE - ($2::int - 1), CURRENT_DATE, '1 day') d
		LEFT JOIN views vw
			ON vw.user_id = $1 AND vw.viewed_at::date = d::date
		GROUP BY d::date
		ORDER BY d::date`, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily views: %w", err)
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var (
			day   time.Time
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan day count: %w", err)
		}
		out = append(out, DayCount{Date: day.Format("2006-01-02"), Count: count})
	}
	return out, rows.Err()
}

// RecentLikedArticles returns the user's most recently liked articles.
func (p *Postgres) RecentLikedArticles(ctx context.Context, userID int64, limit int) ([]models.Article, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM likes lk
		JOIN news_articles a ON a.news_id = lk.news_id`+engagementJoins+`
		WHERE lk.user_id = $1
		ORDER BY lk.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// SimilarByVector returns the articles closest to vec by cosine distance,
// excluding one article (usually the vector's own source). Used by the
// assistant's retrieval expansion.
func (p *Postgres) SimilarByVector(ctx context.Context, vec vector.Vector, excludeID int64, limit int) ([]models.Article, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM news_articles a`+engagementJoins+`
		WHERE a.embedding IS NOT NULL AND a.news_id <> $2
		ORDER BY a.embedding <=> $1
		LIMIT $3`, pgvector.NewVector([]float32(vec)), excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed similarity query: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// ArticlesAfter returns articles with ID greater than cursor in ID order,
// used by the incremental index sync.
func (p *Postgres) ArticlesAfter(ctx context.Context, cursor int64, limit int) ([]models.Article, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM news_articles a`+engagementJoins+`
		WHERE a.news_id > $1
		ORDER BY a.news_id
		LIMIT $2`, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load articles after cursor: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// ArticlesMissingEmbedding returns articles without a content vector, oldest
// first, for the embedding backfill.
func (p *Postgres) ArticlesMissingEmbedding(ctx context.Context, limit int) ([]models.Article, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+articleColumns+`, a.full_text
		FROM news_articles a`+engagementJoins+`
		WHERE a.embedding IS NULL
		ORDER BY a.news_id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load articles missing embedding: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		err := rows.Scan(&a.ID, &a.Title, &a.Author, &a.Link, &a.Summary,
			&a.Category, &a.Keywords, &a.UpdatedAt, &a.ViewCount, &a.LikeCount, &a.FullText)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// UpdateEmbedding stores a freshly generated content vector.
func (p *Postgres) UpdateEmbedding(ctx context.Context, articleID int64, vec vector.Vector) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE news_articles SET embedding = $2 WHERE news_id = $1`,
		articleID, pgvector.NewVector([]float32(vec)))
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
