package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"infobot-backend/internal/chat"
	"infobot-backend/internal/config"
	"infobot-backend/internal/db"
	"infobot-backend/internal/dialogue"
	"infobot-backend/internal/errx"
	"infobot-backend/internal/store"
	"infobot-backend/internal/types"
	logx "infobot-backend/pkg/logger"
)

const maxBodyBytes = 64 << 10

// Deps are the collaborators built by the caller from config.
type Deps struct {
	Chat     *chat.Service
	Feedback *store.FeedbackStore
	Database *db.DB
}

type Server struct {
	router   *chi.Mux
	chat     *chat.Service
	feedback *store.FeedbackStore
	database *db.DB
	validate *validator.Validate
	cfg      config.Config
}

func NewServer(cfg config.Config, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(requestLogger)

	s := &Server{
		router:   r,
		chat:     deps.Chat,
		feedback: deps.Feedback,
		database: deps.Database,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/greeting", s.handleGreeting)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Post("/api/chat/reset", s.handleReset)
	s.router.Delete("/api/session", s.handleEndSession)
	s.router.Post("/api/feedback", s.handleFeedback)
	s.router.Get("/api/feedback/summary", s.handleFeedbackSummary)
}

func (s *Server) Router() http.Handler { return s.router }

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logx.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.database.HealthCheck(ctx); err != nil {
			logx.Warn().Err(err).Msg("database health check failed")
			status["database"] = "error"
		} else {
			status["database"] = "ok"
		}
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	sid := getOrCreateSessionID(r, w, "")
	s.writeJSON(w, http.StatusOK, types.GreetingResponse{SessionID: sid, Response: s.chat.Greeting()})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	sid := getOrCreateSessionID(r, w, req.SessionID)

	turn := s.chat.Reply(r.Context(), sid, req.Message)
	s.writeJSON(w, http.StatusOK, types.ChatResponse{
		SessionID:      sid,
		Reply:          turn.Response.Text,
		QuickReplies:   turn.Response.QuickReplies,
		ExpectFollowUp: turn.Response.ExpectFollowUp,
		Topic:          turn.Response.Topic,
		Context:        turn.Context.String(),
		FollowUp:       turn.FollowUp,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	sid := getOrCreateSessionID(r, w, req.SessionID)
	if err := s.chat.Reset(r.Context(), sid); err != nil {
		logx.Warn().Err(err).Str("session", sid).Msg("session reset failed")
		s.writeError(w, errx.StatusOf(err), errx.MessageOf(err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"sessionId": sid, "status": "reset"})
}

// handleEndSession forgets the session entirely; the next request starts a
// new one.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sid := getSessionID(r)
	if sid == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := s.chat.Reset(r.Context(), sid); err != nil {
		logx.Warn().Err(err).Str("session", sid).Msg("session end failed")
		s.writeError(w, errx.StatusOf(err), errx.MessageOf(err))
		return
	}
	ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	sid := getOrCreateSessionID(r, w, req.SessionID)
	ack, next := s.chat.Feedback(r.Context(), sid, dialogue.FeedbackKind(req.Kind), req.Topic)
	s.writeJSON(w, http.StatusOK, types.FeedbackResponse{
		SessionID: sid,
		Messages:  []dialogue.Response{ack, next},
	})
}

func (s *Server) handleFeedbackSummary(w http.ResponseWriter, r *http.Request) {
	if s.feedback == nil {
		s.writeError(w, http.StatusServiceUnavailable, "feedback storage is not configured")
		return
	}
	sum, err := s.feedback.Summary(r.Context())
	if err != nil {
		logx.Error().Err(err).Msg("feedback summary failed")
		s.writeError(w, errx.StatusOf(err), errx.MessageOf(err))
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return field + " is invalid"
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return fmt.Sprintf("s_%d_%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// getSessionID retrieves the session ID from cookie, header or query parameter.
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID prefers an explicit ID from the request body, then the
// request's cookie/header/query, and otherwise mints a new one. The cookie and
// X-Session-Id header are always refreshed.
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter, explicit string) string {
	sid := strings.TrimSpace(explicit)
	if sid == "" {
		sid = getSessionID(r)
	}
	if sid == "" {
		sid = newSessionID()
		logx.Debug().Str("session", sid).Str("path", r.URL.Path).Msg("creating new session")
	}
	SetSessionCookie(w, r, sid)
	w.Header().Set("X-Session-Id", sid)
	return sid
}
