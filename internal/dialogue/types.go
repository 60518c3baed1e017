package dialogue

// ConversationContext is the single pending flow of a session. The zero value
// means no flow is pending.
type ConversationContext string

const (
	ContextNone             ConversationContext = ""
	ContextAdmissionLevel   ConversationContext = "admission-level"
	ContextAdmissionUG      ConversationContext = "admission-ug"
	ContextAdmissionPG      ConversationContext = "admission-pg"
	ContextFAQSelect        ConversationContext = "faq-select"
	ContextHostelTypeSelect ConversationContext = "hostel-type-select"
	ContextFinishedQuery    ConversationContext = "finished-query"
)

// String returns the wire value, "none" for ContextNone.
func (c ConversationContext) String() string {
	if c == ContextNone {
		return "none"
	}
	return string(c)
}

// ParseConversationContext maps a stored value back to a known context.
// Unknown values fall back to ContextNone so a stale store entry never traps a session.
func ParseConversationContext(v string) ConversationContext {
	switch ConversationContext(v) {
	case ContextAdmissionLevel, ContextAdmissionUG, ContextAdmissionPG,
		ContextFAQSelect, ContextHostelTypeSelect, ContextFinishedQuery:
		return ConversationContext(v)
	default:
		return ContextNone
	}
}

type TopicKind string

const (
	TopicAdmission     TopicKind = "admission"
	TopicFees          TopicKind = "fees"
	TopicRanking       TopicKind = "ranking"
	TopicHostel        TopicKind = "hostel"
	TopicFAQ           TopicKind = "faq"
	TopicLocation      TopicKind = "location"
	TopicContact       TopicKind = "contact"
	TopicDateTime      TopicKind = "datetime"
	TopicWeather       TopicKind = "weather"
	TopicProgramDetail TopicKind = "program_detail"
	TopicSmallTalk     TopicKind = "small_talk"
	TopicUnknown       TopicKind = "unknown"

	// Replies produced by the context handler and the service layer.
	TopicMenu         TopicKind = "menu"
	TopicFollowUp     TopicKind = "follow_up"
	TopicFarewell     TopicKind = "farewell"
	TopicGreeting     TopicKind = "greeting"
	TopicFeedback     TopicKind = "feedback"
	TopicRemoteAnswer TopicKind = "remote_answer"
	TopicServiceError TopicKind = "service_error"
)

// Topic tags a Response with what it answered. Ref carries the program key for
// TopicProgramDetail, the trigger for TopicSmallTalk and the sub-kind elsewhere.
type Topic struct {
	Kind TopicKind `json:"kind"`
	Ref  string    `json:"ref,omitempty"`
}

// Response is one bot turn. A nil QuickReplies means no suggestions.
type Response struct {
	Text           string   `json:"reply"`
	QuickReplies   []string `json:"quickReplies,omitempty"`
	ExpectFollowUp bool     `json:"expectFollowUp"`
	Topic          Topic    `json:"topic"`
}

// reply pairs a Response with the context the engine should move to.
type reply struct {
	Response
	Next ConversationContext
}
