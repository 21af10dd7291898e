// Package store owns persistence: PostgreSQL (articles, users, preference
// events, comments, embeddings via pgvector) and Redis (indexer cursor,
// trending set). The ranking engine only ever reads through this package.
package store

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique constraint conflicts (e.g. username taken).
	ErrDuplicate = errors.New("already exists")
)

// DayCount is one day of view activity for the analyze endpoint.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
