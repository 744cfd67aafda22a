package llm

import (
	"context"
	"fmt"
)

// Client defines the single completion call the service makes against
// the hosted LLM.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CallError reports a failed LLM API call. No call is ever retried; the
// first failure surfaces straight to the request handler.
type CallError struct {
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("LLM call failed: %v", e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
