// Package chunking splits document text into bounded-size chunks, the
// unit of storage and retrieval in the vector index.
package chunking

import "strings"

const (
	// ChunkSize is the number of whitespace-delimited tokens per chunk.
	ChunkSize = 150
	// MinChunkChars is the minimum trimmed length a chunk must exceed
	// to be kept.
	MinChunkChars = 50
)

// Split groups the text's whitespace-delimited tokens into consecutive
// windows of ChunkSize, rejoins each window with single spaces, and
// drops any chunk whose trimmed length is not above MinChunkChars.
// Order is preserved. Empty input yields no chunks.
//
// Splitting is a one-way transform: re-chunking its own output is only
// stable when chunk boundaries already align to the window size.
func Split(text string) []string {
	words := strings.Fields(text)

	var chunks []string
	for i := 0; i < len(words); i += ChunkSize {
		end := i + ChunkSize
		if end > len(words) {
			end = len(words)
		}

		chunk := strings.Join(words[i:end], " ")
		if len(strings.TrimSpace(chunk)) > MinChunkChars {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}
