package dialogue

import (
	"fmt"
	"regexp"
	"time"
)

var feesPattern = regexp.MustCompile(`fees?|cost|charge|tuition`)

// intentRule is one entry of the ordered intent table. The first rule whose
// match returns true wins.
type intentRule struct {
	name  string
	match func(text string) bool
	reply func(text string, now time.Time) reply
}

var intentRules = []intentRule{
	{
		name: "program",
		match: func(text string) bool {
			_, ok := FindProgram(text)
			return ok
		},
		reply: func(text string, _ time.Time) reply {
			p, _ := FindProgram(text)
			return programDetailReply(p)
		},
	},
	{
		name:  "ug-level",
		match: func(text string) bool { return containsAny(text, "bachelor", "ug", "undergraduate") },
		reply: func(string, time.Time) reply { return ugList() },
	},
	{
		name:  "pg-level",
		match: func(text string) bool { return containsAny(text, "master", "pg", "postgraduate") },
		reply: func(string, time.Time) reply { return pgList() },
	},
	{
		name:  "date",
		match: func(text string) bool { return containsAny(text, "date", "today") },
		reply: func(_ string, now time.Time) reply {
			return terminal(TopicDateTime, fmt.Sprintf("📅 Today is **%s**.", now.Format("Monday, 2 January 2006")))
		},
	},
	{
		name:  "time",
		match: func(text string) bool { return containsAny(text, "time") },
		reply: func(_ string, now time.Time) reply {
			return terminal(TopicDateTime, fmt.Sprintf("⏰ The current time in Ludhiana is **%s**.", now.Format("03:04 pm")))
		},
	},
	{
		name:  "weather",
		match: func(text string) bool { return containsAny(text, "weather") },
		reply: func(string, time.Time) reply { return terminal(TopicWeather, textWeather) },
	},
	{
		name:  "fees",
		match: feesPattern.MatchString,
		reply: func(string, time.Time) reply { return terminal(TopicFees, textFees) },
	},
	{
		name:  "ranking",
		match: func(text string) bool { return containsAny(text, "ranking", "rank", "rating") },
		reply: func(string, time.Time) reply { return terminal(TopicRanking, textRanking) },
	},
	{
		name:  "hostel",
		match: func(text string) bool { return containsAny(text, "hostel", "dormitory", "cubicle") },
		reply: func(string, time.Time) reply {
			return prompt(TopicHostel, textHostel, hostelReplies, ContextHostelTypeSelect)
		},
	},
	{
		name:  "location",
		match: func(text string) bool { return containsAny(text, "location", "address", "directions") },
		reply: func(string, time.Time) reply { return terminal(TopicLocation, textLocation) },
	},
	{
		name:  "contact",
		match: func(text string) bool { return containsAny(text, "contact", "phone", "email") },
		reply: func(string, time.Time) reply { return terminal(TopicContact, textContact) },
	},
	{
		name:  "faq",
		match: func(text string) bool { return containsAny(text, "faq") },
		reply: func(string, time.Time) reply {
			return prompt(TopicFAQ, textFAQ, faqReplies, ContextFAQSelect)
		},
	},
	{
		name:  "admission",
		match: func(text string) bool { return containsAny(text, "admission", "eligibility", "courses") },
		reply: func(string, time.Time) reply {
			return prompt(TopicAdmission, textLevel, levelReplies, ContextAdmissionLevel)
		},
	},
}

// matchIntent runs the ordered intent table over normalized text. A miss is
// reported with ok=false; choosing the fallback is left to the caller.
func matchIntent(text string, now time.Time) (reply, bool) {
	if text == "" {
		return reply{}, false
	}
	for _, r := range intentRules {
		if r.match(text) {
			out := r.reply(text, now)
			if out.Topic.Ref == "" {
				out.Topic.Ref = r.name
			}
			return out, true
		}
	}
	return reply{}, false
}
