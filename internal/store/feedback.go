package store

import (
	"context"
	"fmt"
	"time"

	"infobot-backend/internal/db"
	"infobot-backend/internal/errx"
)

// Feedback is one helpful / not helpful rating left after a bot reply.
type Feedback struct {
	SessionID string
	Kind      string
	Topic     string
	CreatedAt time.Time
}

// FeedbackSummary counts ratings by kind.
type FeedbackSummary struct {
	Helpful    int `json:"helpful"`
	NotHelpful int `json:"notHelpful"`
	Total      int `json:"total"`
}

// FeedbackStore records ratings in PostgreSQL.
type FeedbackStore struct {
	db *db.DB
}

func NewFeedbackStore(database *db.DB) *FeedbackStore {
	return &FeedbackStore{db: database}
}

func (fs *FeedbackStore) Save(ctx context.Context, f Feedback) error {
	if f.SessionID == "" || f.Kind == "" {
		return fmt.Errorf("session_id and kind are required")
	}

	query := `
		INSERT INTO feedback (session_id, kind, topic, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := fs.db.ExecContext(ctx, query, f.SessionID, f.Kind, f.Topic); err != nil {
		return errx.WrapDatabase(fmt.Errorf("failed to save feedback: %w", err))
	}
	return nil
}

func (fs *FeedbackStore) Summary(ctx context.Context) (FeedbackSummary, error) {
	var out FeedbackSummary
	rows, err := fs.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM feedback GROUP BY kind`)
	if err != nil {
		return out, errx.WrapDatabase(fmt.Errorf("failed to summarise feedback: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return out, errx.WrapDatabase(err)
		}
		switch kind {
		case "helpful":
			out.Helpful = n
		case "not_helpful":
			out.NotHelpful = n
		}
		out.Total += n
	}
	if err := rows.Err(); err != nil {
		return out, errx.WrapDatabase(err)
	}
	return out, nil
}
