package dialogue

import "strings"

var topicMenu = []string{"Admission", "Fees", "FAQ", "Ranking", "Hostel", "Location", "Contact"}

// Menu returns the quick-reply set offered whenever the bot starts over.
func Menu() []string { return cloneReplies(topicMenu) }

var (
	levelReplies  = []string{"UG", "PG"}
	ugReplies     = []string{"B.Sc.", "B.Tech.", "PG"}
	pgReplies     = []string{"M.Sc.", "M.Tech.", "UG"}
	hostelReplies = []string{"Dormitory", "Cubicle", "Admission"}
	faqReplies    = []string{"Hostel", "Location", "Fees", "Contact"}
	yesNoReplies  = []string{"Yes", "No"}
)

const (
	textUGList     = "🎓 **UG Programs:** Select a program for details:"
	textPGList     = "🔬 **PG Programs:** Select a program for details:"
	textUGReprompt = "Please select a UG program (B.Sc., B.Tech.) or type 'PG' to see postgraduate courses."
	textPGReprompt = "Please select a PG program (M.Sc., M.Tech.) or type 'UG' to see undergraduate courses."
	textLevel      = "Do you want to know about **UG** (undergraduate) or **PG** (postgraduate) programs?"

	textFees = "💰 **Approximate Fees:** UG courses cost around **₹1.24 - ₹1.73 Lakh** (total). PG fees vary by specialization. (Please check the official prospectus for exact charges)"
	textFAQ  = "🙋‍♂️ **Frequently Asked Questions (FAQs):**\nPlease select a topic or type your question (e.g., 'hostel rules'):"

	textWeather = "☀️ The current weather in Ludhiana, Punjab is **94°F (34°C)** and **Sunny**. (Humidity: 50%, Wind: 5 mph Northwest)"

	textFallback         = "🤔 Sorry, I couldn't understand your request. Please try asking about a main topic."
	textNotUnderstood    = "🤔 Sorry, I couldn't understand. Please choose a topic to begin."
	textFAQMiss          = "🤔 Sorry, I couldn't find a direct answer in the FAQ. Please try a main category."
	textAnythingElse     = "Can I help you with anything else? 🤔"
	textSureWhatElse     = "Sure, what else would you like to know? 🤔"
	textFarewell         = "👋 Alright, have a great day! If you need anything, just say 'Hi'."
	textAwaitingYesNo    = "I'm still waiting for a Yes/No to see if you have another question. Do you need help with something else (Yes/No)?"
	textServiceError     = "⚠️ Sorry, I couldn't reach the knowledge service right now. Please try one of the main topics."
	textFeedbackHelpful  = "✅ Thanks for your feedback!"
	textFeedbackCritical = "🙏 Feedback received. We'll use this to improve."
)

var (
	textRanking = bulleted("🏆 PAU Ranking Highlights (NIRF 2024)",
		"**NIRF Agriculture & Allied Sector:** Ranked **#4** in India.",
		"**NIRF Overall University Rank:** Top 100 in India.",
		"**QS World Ranking:** Globally recognized for Agricultural Research Impact.",
	)

	textHostel = bulleted("🏠 **PAU Hostel Facilities & Amenities**\nThe university has 14 separate, guarded hostels (UG/PG, Male/Female).\n\n**Key Facilities:**",
		"**Room Furnishings:** Bed, table, chair, and personal locker.",
		"**Internet:** Wi-Fi connectivity (often concentrated in common areas).",
		"**Mess:** Functional mess (charges separate) with varied menu options.",
		"**Health:** Access to the on-campus 20-bedded university hospital.",
	) + "\nWhich type of accommodation would you like details for?"

	textDormitory = bulleted("🛏️ **Dormitory Hostel Details**",
		"**Occupancy:** Double, Triple, or **Quadruple (4-seater)** sharing.",
		"**Eligibility:** Primarily allotted to **first-year students**.",
		"**Approx. Annual Fees:** **₹17,270** (Excluding Mess & other funds).",
	)

	textCubicle = bulleted("🚪 **Cubicle Hostel Details**",
		"**Occupancy:** **Single-seater** (private) rooms.",
		"**Eligibility:** Generally reserved for **higher-year students** or those with a high OCPA (academic performance).",
		"**Approx. Annual Fees:** **₹26,650** (Excluding Mess & other funds).",
	)

	textLocation = "📍 **PAU Location Details**\n" +
		"**Address:** Punjab Agricultural University, Ferozepur Road, Ludhiana - 141004, Punjab, India.\n" +
		"The campus is located centrally in Ludhiana, right on the Ferozepur Road.\n" +
		"🗺️ View Map Location: https://maps.app.goo.gl/uX3L5q6f6w9YgG1F6"

	textContact = bulleted("📞 **PAU Contact Information**",
		"**General Enquiry:** +91-161-2401960",
		"**Registrar Office:** +91-161-2400827",
		"**Email (Admissions):** registrar@pau.edu",
		"**Official Website:** www.pau.edu",
	) + "\nFor specific department contacts, please check the official PAU directory on the website."
)

func bulleted(head string, items ...string) string {
	var b strings.Builder
	b.WriteString(head)
	for _, it := range items {
		b.WriteString("\n• ")
		b.WriteString(it)
	}
	return b.String()
}

// cloneReplies hands out a fresh slice so callers cannot mutate the tables.
func cloneReplies(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func terminal(kind TopicKind, text string) reply {
	return reply{
		Response: Response{Text: text, ExpectFollowUp: true, Topic: Topic{Kind: kind}},
		Next:     ContextNone,
	}
}

func prompt(kind TopicKind, text string, quick []string, next ConversationContext) reply {
	return reply{
		Response: Response{Text: text, QuickReplies: cloneReplies(quick), Topic: Topic{Kind: kind}},
		Next:     next,
	}
}

func ugList() reply {
	return prompt(TopicAdmission, textUGList, ugReplies, ContextAdmissionUG)
}

func pgList() reply {
	return prompt(TopicAdmission, textPGList, pgReplies, ContextAdmissionPG)
}

func menuReply(kind TopicKind, text string) reply {
	return prompt(kind, text, topicMenu, ContextNone)
}
