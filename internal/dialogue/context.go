package dialogue

import (
	"regexp"
	"time"
)

// topLevelTrigger lets a user leave any pending flow by naming a main topic.
var topLevelTrigger = regexp.MustCompile(`admission|faq|hostel|ranking|fees?|contact|location|date|time|weather`)

// handleContext interprets text against the pending context. ok=false means
// the handler abstained and dispatch should continue with small talk.
func handleContext(ctx ConversationContext, text string, now time.Time) (reply, bool) {
	if ctx == ContextNone {
		return reply{}, false
	}
	if topLevelTrigger.MatchString(text) {
		if r, ok := matchIntent(text, now); ok {
			return r, true
		}
	}

	switch ctx {
	case ContextFinishedQuery:
		return finishedQuery(text, now), true

	case ContextAdmissionLevel:
		switch {
		case containsAny(text, "ug", "bachelor"):
			return ugList(), true
		case containsAny(text, "pg", "master"):
			return pgList(), true
		}
		return menuReply(TopicMenu, textNotUnderstood), true

	case ContextAdmissionUG:
		if p, ok := FindProgram(text); ok {
			return programDetailReply(p), true
		}
		if containsAny(text, "pg", "master") {
			return pgList(), true
		}
		return prompt(TopicAdmission, textUGReprompt, ugReplies, ContextAdmissionUG), true

	case ContextAdmissionPG:
		if p, ok := FindProgram(text); ok {
			return programDetailReply(p), true
		}
		if containsAny(text, "ug", "bachelor") {
			return ugList(), true
		}
		return prompt(TopicAdmission, textPGReprompt, pgReplies, ContextAdmissionPG), true

	case ContextFAQSelect:
		if containsAny(text, "hostel", "location", "fee", "contact") {
			if r, ok := matchIntent(text, now); ok {
				return r, true
			}
		}
		return menuReply(TopicFAQ, textFAQMiss), true

	case ContextHostelTypeSelect:
		switch {
		case containsAny(text, "dormitory"):
			r := terminal(TopicHostel, textDormitory)
			r.Topic.Ref = "dormitory"
			return r, true
		case containsAny(text, "cubicle"):
			r := terminal(TopicHostel, textCubicle)
			r.Topic.Ref = "cubicle"
			return r, true
		}
		return menuReply(TopicMenu, textNotUnderstood), true
	}
	return reply{}, false
}

// finishedQuery answers the "anything else?" prompt. A recognizable new
// question is served directly and clears the pending yes/no.
func finishedQuery(text string, now time.Time) reply {
	if r, ok := matchIntent(text, now); ok {
		return r
	}
	if st, ok := MatchSmallTalk(text); ok {
		return reply{Response: st, Next: ContextNone}
	}
	switch {
	case containsAny(text, "yes"):
		return menuReply(TopicMenu, textSureWhatElse)
	case containsAny(text, "no"):
		return reply{Response: Response{Text: textFarewell, Topic: Topic{Kind: TopicFarewell}}, Next: ContextNone}
	}
	return prompt(TopicFollowUp, textAwaitingYesNo, yesNoReplies, ContextFinishedQuery)
}
