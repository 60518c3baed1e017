package dialogue

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestEngine(opts ...Option) *Engine {
	base := []Option{
		WithLocation(ist),
		WithClock(fixedClock(time.Date(2024, time.March, 5, 14, 7, 0, 0, ist))),
	}
	return NewEngine(append(base, opts...)...)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Hello, World!! ": "hello world",
		"B.Tech.":           "btech",
		"":                  "",
		"!!!":               "",
		"Fees?":             "fees",
		"Ünïcode ok":        "ncode ok",
		"\tUG \n":           "ug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "   ", "Hi there!", "B.Sc. (Hons) Agriculture", "₹26,650 per year",
		"What's the DATE today??", "emoji 👋 inside", "tab\tand\nnewline  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFindProgram(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"b.sc", "b.sc"},
		{"b.tech", "b.tech"},
		{"btech", "b.tech"},
		{"tell me about msc", "m.sc"},
		{"mtech", "m.tech"},
		{"bachelor of technology", "b.tech"},
		{"master of science", "m.sc"},
		// "agri" is declared before "engineering", so table order settles it.
		{"agricultural engineering", "b.sc"},
	}
	for _, tc := range cases {
		p, ok := FindProgram(tc.in)
		require.True(t, ok, "FindProgram(%q)", tc.in)
		assert.Equal(t, tc.want, p.Key, "FindProgram(%q)", tc.in)
	}

	_, ok := FindProgram("hostel")
	assert.False(t, ok)
	_, ok = FindProgram("")
	assert.False(t, ok)
}

func TestProgramsReturnsCopy(t *testing.T) {
	ps := Programs()
	require.Len(t, ps, 4)
	ps[0].Key = "mutated"
	p, ok := FindProgram("b.sc")
	require.True(t, ok)
	assert.Equal(t, "B.Sc. (Hons) Agriculture", p.Title)
}

func TestMatchSmallTalk(t *testing.T) {
	cases := []struct {
		in      string
		trigger string
		menu    bool
	}{
		{"hi", "hi", true},
		{"hello", "hello", true},
		{"how are you today", "how are you", true},
		{"thank you so much", "thanks", false},
		{"i am thankful", "thanks", false},
		{"ok bye", "bye", false},
	}
	for _, tc := range cases {
		r, ok := MatchSmallTalk(tc.in)
		require.True(t, ok, tc.in)
		assert.Equal(t, TopicSmallTalk, r.Topic.Kind)
		assert.Equal(t, tc.trigger, r.Topic.Ref, tc.in)
		assert.False(t, r.ExpectFollowUp)
		if tc.menu {
			assert.Equal(t, Menu(), r.QuickReplies, tc.in)
		} else {
			assert.Nil(t, r.QuickReplies, tc.in)
		}
	}

	_, ok := MatchSmallTalk("fees")
	assert.False(t, ok)
	_, ok = MatchSmallTalk("")
	assert.False(t, ok)
}

func TestColdStartAdmissionFlow(t *testing.T) {
	e := newTestEngine()

	r := e.Respond("admission")
	assert.Equal(t, []string{"UG", "PG"}, r.QuickReplies)
	assert.False(t, r.ExpectFollowUp)
	assert.Equal(t, ContextAdmissionLevel, e.Context())

	r = e.Respond("ug")
	assert.Equal(t, []string{"B.Sc.", "B.Tech.", "PG"}, r.QuickReplies)
	assert.Equal(t, ContextAdmissionUG, e.Context())

	r = e.Respond("b.tech")
	assert.Contains(t, r.Text, "B.Tech. Agricultural Engineering")
	assert.Equal(t, 4, strings.Count(r.Text, "\n• "))
	assert.True(t, r.ExpectFollowUp)
	assert.Nil(t, r.QuickReplies)
	assert.Equal(t, Topic{Kind: TopicProgramDetail, Ref: "b.tech"}, r.Topic)
	assert.Equal(t, ContextNone, e.Context())
}

func TestAdmissionLevelSwitching(t *testing.T) {
	e := newTestEngine(WithContext(ContextAdmissionUG))

	r := e.Respond("pg")
	assert.Equal(t, []string{"M.Sc.", "M.Tech.", "UG"}, r.QuickReplies)
	assert.Equal(t, ContextAdmissionPG, e.Context())

	r = e.Respond("xyz")
	assert.Equal(t, textPGReprompt, r.Text)
	assert.Equal(t, ContextAdmissionPG, e.Context())

	r = e.Respond("bachelor")
	assert.Equal(t, textUGList, r.Text)
	assert.Equal(t, ContextAdmissionUG, e.Context())

	r = e.Respond("xyz")
	assert.Equal(t, textUGReprompt, r.Text)
	assert.Equal(t, []string{"B.Sc.", "B.Tech.", "PG"}, r.QuickReplies)
	assert.Equal(t, ContextAdmissionUG, e.Context())

	r = e.Respond("M.Sc.")
	assert.Contains(t, r.Text, "M.Sc. (Master of Science)")
	assert.Equal(t, ContextNone, e.Context())
}

func TestAdmissionLevelUnclear(t *testing.T) {
	e := newTestEngine(WithContext(ContextAdmissionLevel))

	r := e.Respond("xyz")
	assert.Equal(t, textNotUnderstood, r.Text)
	assert.Equal(t, Menu(), r.QuickReplies)
	assert.Equal(t, ContextNone, e.Context())

	e = newTestEngine(WithContext(ContextAdmissionLevel))
	e.Respond("master")
	assert.Equal(t, ContextAdmissionPG, e.Context())
}

func TestFinishedQueryLoop(t *testing.T) {
	e := newTestEngine()

	r := e.Respond("fees")
	require.True(t, r.ExpectFollowUp)
	f := e.FollowUp()
	assert.Equal(t, []string{"Yes", "No"}, f.QuickReplies)
	assert.Equal(t, ContextFinishedQuery, e.Context())

	r = e.Respond("maybe")
	assert.Equal(t, textAwaitingYesNo, r.Text)
	assert.Equal(t, []string{"Yes", "No"}, r.QuickReplies)
	assert.Equal(t, ContextFinishedQuery, e.Context())

	r = e.Respond("Yes")
	assert.Equal(t, textSureWhatElse, r.Text)
	assert.Equal(t, Menu(), r.QuickReplies)
	assert.Equal(t, ContextNone, e.Context())

	e.FollowUp()
	r = e.Respond("No")
	assert.Equal(t, textFarewell, r.Text)
	assert.Nil(t, r.QuickReplies)
	assert.False(t, r.ExpectFollowUp)
	assert.Equal(t, ContextNone, e.Context())
}

func TestFinishedQueryAcceptsNewQuestion(t *testing.T) {
	e := newTestEngine(WithContext(ContextFinishedQuery))
	r := e.Respond("ug")
	assert.Equal(t, textUGList, r.Text)
	assert.Equal(t, ContextAdmissionUG, e.Context())

	e = newTestEngine(WithContext(ContextFinishedQuery))
	r = e.Respond("hello")
	assert.Equal(t, TopicSmallTalk, r.Topic.Kind)
	assert.Equal(t, ContextNone, e.Context())
}

func TestHostelSubFlow(t *testing.T) {
	e := newTestEngine()

	r := e.Respond("hostel")
	assert.Contains(t, r.Text, "14 separate, guarded hostels")
	assert.Equal(t, []string{"Dormitory", "Cubicle", "Admission"}, r.QuickReplies)
	assert.False(t, r.ExpectFollowUp)
	assert.Equal(t, ContextHostelTypeSelect, e.Context())

	r = e.Respond("cubicle")
	assert.Contains(t, r.Text, "₹26,650")
	assert.True(t, r.ExpectFollowUp)
	assert.Equal(t, ContextNone, e.Context())

	e.Respond("hostel")
	r = e.Respond("Dormitory")
	assert.Contains(t, r.Text, "₹17,270")
	assert.Equal(t, ContextNone, e.Context())

	e.Respond("hostel")
	r = e.Respond("pool")
	assert.Equal(t, textNotUnderstood, r.Text)
	assert.Equal(t, Menu(), r.QuickReplies)
	assert.Equal(t, ContextNone, e.Context())
}

func TestDormitoryWithoutContextLandsOnHostelOverview(t *testing.T) {
	e := newTestEngine()
	r := e.Respond("dormitory")
	assert.Equal(t, textHostel, r.Text)
	assert.Equal(t, ContextHostelTypeSelect, e.Context())
}

func TestFAQFlow(t *testing.T) {
	e := newTestEngine()

	r := e.Respond("FAQ")
	assert.Equal(t, []string{"Hostel", "Location", "Fees", "Contact"}, r.QuickReplies)
	assert.Equal(t, ContextFAQSelect, e.Context())

	r = e.Respond("contact")
	assert.Equal(t, textContact, r.Text)
	assert.Equal(t, ContextNone, e.Context())

	e.Respond("faq")
	r = e.Respond("banana")
	assert.Equal(t, textFAQMiss, r.Text)
	assert.Equal(t, Menu(), r.QuickReplies)
	assert.Equal(t, ContextNone, e.Context())
}

func TestUniversalJumpMatchesFreshIntent(t *testing.T) {
	contexts := []ConversationContext{
		ContextAdmissionLevel, ContextAdmissionUG, ContextAdmissionPG,
		ContextFAQSelect, ContextHostelTypeSelect, ContextFinishedQuery,
	}
	inputs := []string{"fees", "ranking", "contact", "location", "weather", "time", "faq", "hostel", "admission", "date"}

	for _, ctx := range contexts {
		for _, in := range inputs {
			fresh := newTestEngine()
			want := fresh.Respond(in)

			e := newTestEngine(WithContext(ctx))
			got := e.Respond(in)
			assert.Equal(t, want, got, "context %s input %q", ctx, in)
			assert.Equal(t, fresh.Context(), e.Context(), "context %s input %q", ctx, in)
		}
	}
}

func TestUnresolvableInput(t *testing.T) {
	for _, in := range []string{"asdkjfh", "", "?!?"} {
		e := newTestEngine()
		r := e.Respond(in)
		assert.Equal(t, textFallback, r.Text, in)
		assert.Equal(t, Menu(), r.QuickReplies, in)
		assert.False(t, r.ExpectFollowUp, in)
		assert.Equal(t, TopicUnknown, r.Topic.Kind, in)
		assert.Equal(t, ContextNone, e.Context(), in)
	}
}

func TestRulePriority(t *testing.T) {
	cases := []struct {
		in   string
		kind TopicKind
		ref  string
	}{
		{"hostel fees", TopicFees, "fees"},
		{"tuition cost", TopicFees, "fees"},
		{"fee", TopicFees, "fees"},
		{"master of technology", TopicProgramDetail, "m.tech"},
		{"postgraduate", TopicAdmission, "pg-level"},
		{"undergraduate", TopicAdmission, "ug-level"},
		{"university rating", TopicRanking, "ranking"},
		{"address", TopicLocation, "location"},
		{"phone number", TopicContact, "contact"},
		{"eligibility", TopicAdmission, "admission"},
		{"weather", TopicWeather, "weather"},
	}
	for _, tc := range cases {
		e := newTestEngine()
		r := e.Respond(tc.in)
		assert.Equal(t, tc.kind, r.Topic.Kind, tc.in)
		assert.Equal(t, tc.ref, r.Topic.Ref, tc.in)
	}
}

func TestDateAndTimeUseClock(t *testing.T) {
	e := newTestEngine()

	r := e.Respond("what is the date")
	assert.Equal(t, "📅 Today is **Tuesday, 5 March 2024**.", r.Text)
	assert.True(t, r.ExpectFollowUp)

	r = e.Respond("time")
	assert.Equal(t, "⏰ The current time in Ludhiana is **02:07 pm**.", r.Text)
	assert.Equal(t, ContextNone, e.Context())
}

func TestGreeting(t *testing.T) {
	cases := map[int]string{
		9:  "Good morning!",
		14: "Good afternoon!",
		20: "Good evening!",
	}
	for hour, prefix := range cases {
		e := NewEngine(
			WithLocation(ist),
			WithClock(fixedClock(time.Date(2024, time.March, 5, hour, 0, 0, 0, ist))),
		)
		g := e.Greeting()
		assert.True(t, strings.HasPrefix(g.Text, prefix), g.Text)
		assert.Contains(t, g.Text, "I'm the PAU InfoBot")
		assert.Equal(t, Menu(), g.QuickReplies)
	}
}

func TestFeedback(t *testing.T) {
	e := newTestEngine(WithContext(ContextHostelTypeSelect))

	ack, next := e.Feedback(FeedbackHelpful)
	assert.Equal(t, textFeedbackHelpful, ack.Text)
	assert.Equal(t, textAnythingElse, next.Text)
	assert.Equal(t, Menu(), next.QuickReplies)
	assert.Equal(t, ContextNone, e.Context())

	ack, _ = e.Feedback(FeedbackNotHelpful)
	assert.Equal(t, textFeedbackCritical, ack.Text)
}

func TestRemoteAnswerAndServiceError(t *testing.T) {
	e := newTestEngine(WithContext(ContextFAQSelect))
	r := e.RemoteAnswer("PAU was founded in 1962.")
	assert.Equal(t, TopicRemoteAnswer, r.Topic.Kind)
	assert.True(t, r.ExpectFollowUp)
	assert.Equal(t, ContextNone, e.Context())

	e = newTestEngine(WithContext(ContextAdmissionPG))
	r = e.ServiceError()
	assert.Equal(t, textServiceError, r.Text)
	assert.Equal(t, Menu(), r.QuickReplies)
	assert.False(t, r.ExpectFollowUp)
	assert.Equal(t, ContextNone, e.Context())
}

func TestContextAlwaysKnown(t *testing.T) {
	valid := map[ConversationContext]bool{
		ContextNone: true, ContextAdmissionLevel: true, ContextAdmissionUG: true,
		ContextAdmissionPG: true, ContextFAQSelect: true, ContextHostelTypeSelect: true,
		ContextFinishedQuery: true,
	}
	e := newTestEngine()
	script := []string{
		"hi", "admission", "pg", "ug", "zzz", "b.sc", "faq", "nothing", "hostel",
		"cubicle", "yes", "no", "", "fees", "master", "m.tech", "weather", "bye",
	}
	for i, in := range script {
		r := e.Respond(in)
		require.True(t, valid[e.Context()], "step %d %q left context %q", i, in, e.Context())
		if r.ExpectFollowUp {
			e.FollowUp()
		}
	}
}

func TestQuickRepliesAreCopies(t *testing.T) {
	e := newTestEngine()
	r := e.Respond("asdkjfh")
	r.QuickReplies[0] = "mutated"
	assert.Equal(t, "Admission", Menu()[0])
	assert.Equal(t, "Admission", e.Respond("asdkjfh").QuickReplies[0])
}

func TestParseConversationContext(t *testing.T) {
	assert.Equal(t, ContextAdmissionPG, ParseConversationContext("admission-pg"))
	assert.Equal(t, ContextNone, ParseConversationContext("bogus"))
	assert.Equal(t, ContextNone, ParseConversationContext(""))
	assert.Equal(t, "none", ContextNone.String())
	assert.Equal(t, "faq-select", ContextFAQSelect.String())
}
