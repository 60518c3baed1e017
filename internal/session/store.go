package session

import (
	"context"

	"infobot-backend/internal/dialogue"
)

// Store persists the pending conversation context per session. A missing or
// expired entry loads as dialogue.ContextNone.
type Store interface {
	Load(ctx context.Context, sessionID string) (dialogue.ConversationContext, error)
	Save(ctx context.Context, sessionID string, c dialogue.ConversationContext) error
	Delete(ctx context.Context, sessionID string) error
}
