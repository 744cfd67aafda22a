package indexer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/nutrirag/nutrirag/internal/vectordb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	records []vectordb.Record
	err     error
}

func (f *fakeIndex) UpsertChunks(ctx context.Context, records []vectordb.Record) error {
	f.records = records
	return f.err
}

func (f *fakeIndex) Query(ctx context.Context, message string, limit int) ([]vectordb.Match, error) {
	return nil, nil
}

func (f *fakeIndex) Ready(ctx context.Context) bool { return true }

func TestBuildRecordsOnePerChunk(t *testing.T) {
	chunks := []string{"first chunk", "second chunk", "third chunk"}

	records := BuildRecords("guide.pdf", chunks)
	require.Len(t, records, len(chunks))

	idPattern := regexp.MustCompile(`^guide\.pdf_(\d+)_[0-9a-f]{8}$`)
	for i, rec := range records {
		assert.Regexp(t, idPattern, rec.ID)
		assert.Contains(t, rec.ID, fmt.Sprintf("guide.pdf_%d_", i))
		assert.Equal(t, chunks[i], rec.Text)
		assert.Equal(t, "guide.pdf", rec.Filename)
	}
}

func TestBuildRecordsDistinctIDs(t *testing.T) {
	chunks := make([]string, 50)
	for i := range chunks {
		chunks[i] = "same text every time"
	}

	records := BuildRecords("dup.txt", chunks)
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		_, dup := seen[rec.ID]
		assert.False(t, dup, "duplicate id %s", rec.ID)
		seen[rec.ID] = struct{}{}
	}
}

func TestIndexChunksSubmitsBatch(t *testing.T) {
	idx := &fakeIndex{}

	err := IndexChunks(context.Background(), idx, "notes.txt", []string{"a chunk", "another chunk"})
	require.NoError(t, err)
	assert.Len(t, idx.records, 2)
}

func TestIndexChunksPropagatesUpsertError(t *testing.T) {
	upsertErr := &vectordb.UpsertError{Err: errors.New("boom")}
	idx := &fakeIndex{err: upsertErr}

	err := IndexChunks(context.Background(), idx, "notes.txt", []string{"a chunk"})
	var target *vectordb.UpsertError
	require.ErrorAs(t, err, &target)
}
