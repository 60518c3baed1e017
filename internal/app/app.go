// Package app assembles the InfoBot collaborators from Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	goredis "github.com/redis/go-redis/v9"

	"infobot-backend/internal/answer"
	"infobot-backend/internal/chat"
	"infobot-backend/internal/config"
	"infobot-backend/internal/db"
	"infobot-backend/internal/dialogue"
	"infobot-backend/internal/server"
	"infobot-backend/internal/session"
	"infobot-backend/internal/store"
	logx "infobot-backend/pkg/logger"
	"infobot-backend/pkg/redis"
)

// App owns everything that must be closed on shutdown.
type App struct {
	Chat     *chat.Service
	Server   *server.Server
	Sessions session.Store
	// Memory is set when sessions live in process and need sweeping.
	Memory   *session.MemoryStore
	Database *db.DB

	redisClient *goredis.Client
}

// Build wires the session store, answer backend and optional database.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	sessions, err := a.buildSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Sessions = sessions

	answerer, err := BuildAnswerer(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	var feedback *store.FeedbackStore
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.Database = database
		if err := database.RunMigrations(ctx, cfg.MigrationsDir); err != nil {
			a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		feedback = store.NewFeedbackStore(database)
	} else {
		logx.Info().Msg("DB_URL not set; feedback is not persisted")
	}

	opts := chat.Options{
		Store:    sessions,
		Answerer: answerer,
		Location: dialogue.LoadLocation(cfg.Timezone),
	}
	// A nil *FeedbackStore inside the interface would not compare equal to nil.
	if feedback != nil {
		opts.Feedback = feedback
	}
	a.Chat = chat.NewService(opts)
	a.Server = server.NewServer(cfg, server.Deps{
		Chat:     a.Chat,
		Feedback: feedback,
		Database: a.Database,
	})
	return a, nil
}

func (a *App) buildSessions(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.SessionStore {
	case "", "memory":
		a.Memory = session.NewMemoryStore(cfg.SessionTTL)
		return a.Memory, nil
	case "redis":
		var rc redis.Config
		if err := envconfig.Process("redis", &rc); err != nil {
			return nil, fmt.Errorf("redis config: %w", err)
		}
		client, err := rc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redisClient = client
		logx.Info().Dur("ttl", cfg.SessionTTL).Msg("sessions stored in redis")
		return session.NewRedisStore(client, cfg.SessionTTL), nil
	}
	return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
}

// BuildAnswerer returns nil when no backend is configured, in which case
// unmatched questions get the static fallback only.
func BuildAnswerer(ctx context.Context, cfg config.Config) (answer.Answerer, error) {
	switch cfg.AnswerBackend {
	case "", "none":
		return nil, nil
	case "http":
		if cfg.RemoteAnswerURL == "" {
			return nil, nil
		}
		return answer.NewHTTPClient(answer.HTTPConfig{
			BaseURL:    cfg.RemoteAnswerURL,
			AnswerPath: cfg.RemoteAnswerPath,
			ClearPath:  cfg.RemoteClearPath,
			Payload:    answer.PayloadStyle(cfg.RemoteAnswerPayload),
			Timeout:    cfg.RemoteAnswerTimeout,
		}), nil
	case "openai":
		spec, err := answer.LoadPromptSpec(cfg.AnswerPromptFile)
		if err != nil {
			return nil, err
		}
		client := answer.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		return answer.NewOpenAIAnswerer(spec, client, cfg.OpenAIModel), nil
	case "gemini":
		spec, err := answer.LoadPromptSpec(cfg.AnswerPromptFile)
		if err != nil {
			return nil, err
		}
		client, err := answer.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return answer.NewGeminiAnswerer(spec, client, cfg.GeminiModel), nil
	}
	return nil, fmt.Errorf("unknown ANSWER_BACKEND %q", cfg.AnswerBackend)
}

// SweepSessions evicts expired in-process sessions every interval until ctx
// is done. It returns immediately for external stores.
func (a *App) SweepSessions(ctx context.Context, interval time.Duration) {
	if a.Memory == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.Memory.Sweep(); n > 0 {
				logx.Debug().Int("evicted", n).Int("live", a.Memory.Len()).Msg("session sweep")
			}
		}
	}
}

// Close waits for background work and releases connections.
func (a *App) Close() error {
	if a.Chat != nil {
		a.Chat.Wait()
	}
	var errs []error
	if a.redisClient != nil {
		errs = append(errs, a.redisClient.Close())
	}
	if a.Database != nil {
		errs = append(errs, a.Database.Close())
	}
	return errors.Join(errs...)
}
