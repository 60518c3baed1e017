package types

import "infobot-backend/internal/dialogue"

type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	SessionID      string             `json:"sessionId"`
	Reply          string             `json:"reply"`
	QuickReplies   []string           `json:"quickReplies,omitempty"`
	ExpectFollowUp bool               `json:"expectFollowUp"`
	Topic          dialogue.Topic     `json:"topic"`
	Context        string             `json:"context"`
	FollowUp       *dialogue.Response `json:"followUp,omitempty"`
}

type FeedbackRequest struct {
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind" validate:"required,oneof=helpful not_helpful"`
	Topic     string `json:"topic,omitempty" validate:"max=64"`
}

// FeedbackResponse carries the acknowledgement and the menu prompt that follows it.
type FeedbackResponse struct {
	SessionID string              `json:"sessionId"`
	Messages  []dialogue.Response `json:"messages"`
}

type GreetingResponse struct {
	SessionID string `json:"sessionId"`
	dialogue.Response
}

type ErrorResponse struct {
	Error string `json:"error"`
}
