// Package chat runs dialogue turns for many concurrent sessions, persisting
// each session's pending context between requests.
package chat

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"infobot-backend/internal/answer"
	"infobot-backend/internal/dialogue"
	"infobot-backend/internal/session"
	"infobot-backend/internal/store"
	logx "infobot-backend/pkg/logger"
)

const lockStripes = 64

// FeedbackRecorder persists ratings. *store.FeedbackStore satisfies it.
type FeedbackRecorder interface {
	Save(ctx context.Context, f store.Feedback) error
}

// Turn is the outcome of one user message. FollowUp is set when the reply
// expects the "anything else?" prompt, which has already moved the session
// into the finished-query context.
type Turn struct {
	Response dialogue.Response
	FollowUp *dialogue.Response
	Context  dialogue.ConversationContext
}

type Options struct {
	Store    session.Store
	Answerer answer.Answerer
	Feedback FeedbackRecorder
	Location *time.Location
	Clock    func() time.Time
	// ClearTimeout bounds the background history-clear call on reset.
	ClearTimeout time.Duration
}

// Service serializes turns per session with striped locks, so one session's
// context is never read and written by two requests at once.
type Service struct {
	store        session.Store
	answerer     answer.Answerer
	feedback     FeedbackRecorder
	loc          *time.Location
	clock        func() time.Time
	clearTimeout time.Duration
	locks        [lockStripes]sync.Mutex
	background   sync.WaitGroup
}

func NewService(opts Options) *Service {
	s := &Service{
		store:        opts.Store,
		answerer:     opts.Answerer,
		feedback:     opts.Feedback,
		loc:          opts.Location,
		clock:        opts.Clock,
		clearTimeout: opts.ClearTimeout,
	}
	if s.store == nil {
		s.store = session.NewMemoryStore(30 * time.Minute)
	}
	if s.loc == nil {
		s.loc = dialogue.DefaultLocation()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.clearTimeout <= 0 {
		s.clearTimeout = 10 * time.Second
	}
	return s
}

func (s *Service) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *Service) engine(c dialogue.ConversationContext) *dialogue.Engine {
	return dialogue.NewEngine(
		dialogue.WithContext(c),
		dialogue.WithClock(s.clock),
		dialogue.WithLocation(s.loc),
	)
}

// load falls back to no context when the store fails; a turn always completes.
func (s *Service) load(ctx context.Context, sessionID string) dialogue.ConversationContext {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("session", sessionID).Msg("session load failed, starting fresh")
		return dialogue.ContextNone
	}
	return c
}

func (s *Service) save(ctx context.Context, sessionID string, c dialogue.ConversationContext) {
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		logx.Warn().Err(err).Str("session", sessionID).Str("context", c.String()).Msg("session save failed")
	}
}

// Reply runs one turn for sessionID. Input the rules cannot place is offered
// to the configured answerer, if any; its failure yields the service-error
// reply rather than an error.
func (s *Service) Reply(ctx context.Context, sessionID, message string) Turn {
	unlock := s.lock(sessionID)
	defer unlock()

	e := s.engine(s.load(ctx, sessionID))
	resp := e.Respond(message)

	if resp.Topic.Kind == dialogue.TopicUnknown && s.answerer != nil && dialogue.Normalize(message) != "" {
		text, err := s.answerer.Answer(ctx, strings.TrimSpace(message), sessionID)
		if err != nil {
			logx.Warn().Err(err).Str("session", sessionID).Msg("remote answer failed")
			resp = e.ServiceError()
		} else {
			resp = e.RemoteAnswer(text)
		}
	}

	turn := Turn{Response: resp}
	if resp.ExpectFollowUp {
		f := e.FollowUp()
		turn.FollowUp = &f
	}
	turn.Context = e.Context()
	s.save(ctx, sessionID, turn.Context)

	logx.Debug().
		Str("session", sessionID).
		Str("topic", string(resp.Topic.Kind)).
		Str("context", turn.Context.String()).
		Msg("turn")
	return turn
}

// Greeting returns the opening message; it does not touch session state.
func (s *Service) Greeting() dialogue.Response {
	return s.engine(dialogue.ContextNone).Greeting()
}

// Reset forgets the session's pending context and, when the answerer keeps
// its own history, asks it to clear that too in the background.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	err := s.store.Delete(ctx, sessionID)
	unlock()

	if clearer, ok := s.answerer.(answer.HistoryClearer); ok {
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			cctx, cancel := context.WithTimeout(context.Background(), s.clearTimeout)
			defer cancel()
			if err := clearer.ClearHistory(cctx, sessionID); err != nil {
				logx.Warn().Err(err).Str("session", sessionID).Msg("clear history failed")
			}
		}()
	}
	return err
}

// Feedback records a rating and returns the acknowledgement followed by the
// topic menu prompt. The session's pending context is cleared. Persistence
// failures are logged only.
func (s *Service) Feedback(ctx context.Context, sessionID string, kind dialogue.FeedbackKind, topic string) (ack, next dialogue.Response) {
	unlock := s.lock(sessionID)
	e := s.engine(s.load(ctx, sessionID))
	ack, next = e.Feedback(kind)
	s.save(ctx, sessionID, e.Context())
	unlock()

	if s.feedback != nil {
		err := s.feedback.Save(ctx, store.Feedback{SessionID: sessionID, Kind: string(kind), Topic: topic})
		if err != nil {
			logx.Error().Err(err).Str("session", sessionID).Msg("feedback save failed")
		}
	}
	return ack, next
}

// Wait blocks until background history clears have finished.
func (s *Service) Wait() {
	s.background.Wait()
}
