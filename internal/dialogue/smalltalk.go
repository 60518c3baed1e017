package dialogue

type smallTalkEntry struct {
	trigger      string
	text         string
	quickReplies []string
}

// smallTalk is matched by substring in declaration order after the compound
// triggers in MatchSmallTalk.
var smallTalk = []smallTalkEntry{
	{trigger: "hi", text: "Hello! How can I help you? 👋", quickReplies: topicMenu},
	{trigger: "hello", text: "Hi there! What can I do for you?", quickReplies: topicMenu},
	{trigger: "how are you", text: "I'm a bot, so I'm always running optimally! Thanks for asking. How can I assist you with PAU information? 🤖", quickReplies: topicMenu},
	{trigger: "bye", text: "Goodbye! Have a nice day! 😊"},
	{trigger: "thanks", text: "You're welcome! 😊"},
}

// MatchSmallTalk returns a canned social reply for text, if any. It never
// expects a follow-up and never touches the conversation context.
func MatchSmallTalk(text string) (Response, bool) {
	if text == "" {
		return Response{}, false
	}
	switch {
	case containsAny(text, "how are you"):
		return smallTalkByTrigger("how are you"), true
	case containsAny(text, "thanks", "thank you", "thankful"):
		return smallTalkByTrigger("thanks"), true
	}
	for _, e := range smallTalk {
		if containsAny(text, e.trigger) {
			return e.response(), true
		}
	}
	return Response{}, false
}

func smallTalkByTrigger(trigger string) Response {
	for _, e := range smallTalk {
		if e.trigger == trigger {
			return e.response()
		}
	}
	return Response{}
}

func (e smallTalkEntry) response() Response {
	return Response{
		Text:         e.text,
		QuickReplies: cloneReplies(e.quickReplies),
		Topic:        Topic{Kind: TopicSmallTalk, Ref: e.trigger},
	}
}
