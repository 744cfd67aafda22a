// Package vectordb talks to the external hosted vector index. Embedding
// happens server-side; this package only ships text with metadata and
// reads back similarity matches.
package vectordb

import (
	"context"
	"fmt"
)

// Record is one chunk prepared for storage: a caller-assigned identifier
// plus the metadata the index keeps alongside the vector.
type Record struct {
	ID       string
	Text     string
	Filename string
}

// Match is one similarity-query hit, read-only and scoped to a single
// chat request.
type Match struct {
	Text     string
	Filename string
	Score    float32
}

// Index is the contract the rest of the service programs against.
type Index interface {
	UpsertChunks(ctx context.Context, records []Record) error
	Query(ctx context.Context, message string, limit int) ([]Match, error)
	Ready(ctx context.Context) bool
}

// UpsertError reports a failed batch submission to the external index.
type UpsertError struct {
	Err error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("vector index upsert failed: %v", e.Err)
}

func (e *UpsertError) Unwrap() error { return e.Err }

// QueryError reports a failed similarity query against the external index.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("vector index query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
