// Package prompt assembles the single instruction prompt sent to the LLM.
package prompt

import (
	"fmt"
	"strings"

	"github.com/nutrirag/nutrirag/internal/vectordb"
)

// ContextSource says where the prompt's grounding context came from.
// At most one source is used per request.
type ContextSource int

const (
	// SourceNone means the model answers from general knowledge.
	SourceNone ContextSource = iota
	// SourceRetrievedChunks grounds the answer in uploaded documents.
	SourceRetrievedChunks
	// SourceDomainEnrichment grounds the answer in USDA facts.
	SourceDomainEnrichment
)

// ChunkContext renders retrieved matches as a context block, one
// source/content pair per match.
func ChunkContext(matches []vectordb.Match) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("Source: %s\nContent: %s", m.Filename, m.Text))
	}
	return strings.Join(parts, "\n\n")
}

// Compose builds the full prompt for the user's question. When context
// exists the model is told to answer only from it; otherwise the prompt
// falls back to general nutrition expertise with the standard
// disclaimers. No truncation happens here: an oversized context is the
// upstream model's problem to reject.
func Compose(question string, source ContextSource, context string) string {
	switch source {
	case SourceRetrievedChunks, SourceDomainEnrichment:
		return fmt.Sprintf(`You are a nutrition expert. Answer the question using only the provided context.

Context:
%s

Question: %s

Provide a helpful answer based on the context.`, context, question)

	default:
		return fmt.Sprintf(`You are a knowledgeable and helpful nutrition expert. Please provide accurate, helpful advice about the following nutrition question:

Question: %s

Please provide:
1. A clear, informative answer
2. Practical advice when applicable
3. Any important disclaimers about consulting healthcare professionals for medical conditions

Keep your response conversational and easy to understand.`, question)
	}
}
