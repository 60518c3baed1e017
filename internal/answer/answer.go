// Package answer holds the external answer backends consulted when the rule
// engine finds no match.
package answer

import (
	"context"
	"errors"
)

// Answerer produces a free-form answer for a query the rules could not place.
type Answerer interface {
	Answer(ctx context.Context, query, sessionID string) (string, error)
}

// HistoryClearer is implemented by backends that keep per-session memory.
type HistoryClearer interface {
	ClearHistory(ctx context.Context, sessionID string) error
}

var ErrEmptyAnswer = errors.New("answer service returned an empty answer")
