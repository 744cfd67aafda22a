// Package indexer prepares document chunks for storage in the vector
// index.
package indexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nutrirag/nutrirag/internal/vectordb"
)

// BuildRecords assigns each chunk a unique identifier of the form
// {filename}_{sequence_index}_{8-hex-random-suffix} and attaches the
// source filename as metadata. The random suffix keeps identifiers
// distinct across repeated uploads of the same file.
func BuildRecords(filename string, chunks []string) []vectordb.Record {
	records := make([]vectordb.Record, 0, len(chunks))
	for i, chunk := range chunks {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		records = append(records, vectordb.Record{
			ID:       fmt.Sprintf("%s_%d_%s", filename, i, suffix),
			Text:     chunk,
			Filename: filename,
		})
	}
	return records
}

// IndexChunks builds the upsert records and submits the full batch to
// the external index in one synchronous call.
func IndexChunks(ctx context.Context, index vectordb.Index, filename string, chunks []string) error {
	return index.UpsertChunks(ctx, BuildRecords(filename, chunks))
}
