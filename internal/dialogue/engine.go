package dialogue

import (
	"fmt"
	"time"
)

const defaultTimezone = "Asia/Kolkata"

// Engine is the dialogue state machine for a single session. It is not safe
// for concurrent use; callers serialize turns per session.
type Engine struct {
	ctx   ConversationContext
	clock func() time.Time
	loc   *time.Location
}

type Option func(*Engine)

// WithContext restores a previously persisted context.
func WithContext(ctx ConversationContext) Option {
	return func(e *Engine) { e.ctx = ctx }
}

func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLocation sets the zone used for dates, times and greetings.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{clock: time.Now, loc: DefaultLocation()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultLocation resolves Asia/Kolkata, falling back to a fixed IST offset
// when the host has no zoneinfo.
func DefaultLocation() *time.Location {
	return LoadLocation(defaultTimezone)
}

// LoadLocation resolves name, falling back to IST on failure.
func LoadLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*60*60+30*60)
}

// Context returns the pending context after the last call.
func (e *Engine) Context() ConversationContext { return e.ctx }

func (e *Engine) now() time.Time { return e.clock().In(e.loc) }

// Respond runs one user turn: context handler, small talk, intent table and
// finally the static fallback. It always produces a Response.
func (e *Engine) Respond(raw string) Response {
	text := Normalize(raw)
	now := e.now()

	if r, ok := handleContext(e.ctx, text, now); ok {
		e.ctx = r.Next
		return r.Response
	}
	if st, ok := MatchSmallTalk(text); ok {
		return st
	}
	if r, ok := matchIntent(text, now); ok {
		e.ctx = r.Next
		return r.Response
	}
	r := menuReply(TopicUnknown, textFallback)
	e.ctx = r.Next
	return r.Response
}

// FollowUp is the "anything else?" prompt shown after a Response with
// ExpectFollowUp set. It moves the engine into ContextFinishedQuery.
func (e *Engine) FollowUp() Response {
	r := prompt(TopicFollowUp, textAnythingElse, yesNoReplies, ContextFinishedQuery)
	e.ctx = r.Next
	return r.Response
}

// Greeting opens a conversation with a salutation for the local hour.
func (e *Engine) Greeting() Response {
	var part string
	switch h := e.now().Hour(); {
	case h < 12:
		part = "Good morning"
	case h < 17:
		part = "Good afternoon"
	default:
		part = "Good evening"
	}
	return Response{
		Text:         fmt.Sprintf("%s! I'm the PAU InfoBot. How can I help you today? 👋", part),
		QuickReplies: Menu(),
		Topic:        Topic{Kind: TopicGreeting},
	}
}

type FeedbackKind string

const (
	FeedbackHelpful    FeedbackKind = "helpful"
	FeedbackNotHelpful FeedbackKind = "not_helpful"
)

// Feedback acknowledges a rating and offers the topic menu again. The
// pending context is cleared.
func (e *Engine) Feedback(kind FeedbackKind) (ack Response, next Response) {
	text := textFeedbackHelpful
	if kind == FeedbackNotHelpful {
		text = textFeedbackCritical
	}
	e.ctx = ContextNone
	ack = Response{Text: text, Topic: Topic{Kind: TopicFeedback, Ref: string(kind)}}
	next = menuReply(TopicMenu, textAnythingElse).Response
	return ack, next
}

// RemoteAnswer wraps an externally generated answer as a terminal turn.
func (e *Engine) RemoteAnswer(text string) Response {
	r := terminal(TopicRemoteAnswer, text)
	e.ctx = r.Next
	return r.Response
}

// ServiceError is returned in place of a remote answer that could not be
// fetched.
func (e *Engine) ServiceError() Response {
	r := menuReply(TopicServiceError, textServiceError)
	e.ctx = r.Next
	return r.Response
}

// Reset drops any pending flow.
func (e *Engine) Reset() { e.ctx = ContextNone }
