package models

import "time"

// User is a platform account. PasswordHash is a bcrypt hash and never leaves
// the store/auth boundary.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment is one user comment on an article.
type Comment struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"-"`
	UserID    int64     `json:"-"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
