package dialogue

import (
	"fmt"
	"strings"
)

// ProgramRecord describes one academic program offered for admission.
type ProgramRecord struct {
	Key      string
	Icon     string
	Title    string
	Keywords []string
	Details  []string
}

// programs is scanned in order; alias overlap between entries is settled by position.
var programs = []ProgramRecord{
	{
		Key:      "b.sc",
		Icon:     "🎓",
		Title:    "B.Sc. (Hons) Agriculture",
		Keywords: []string{"bachelor of science", "agriculture", "bsc", "agri"},
		Details: []string{
			"**Eligibility:** 10+2 with Physics, Chemistry, and Math/Bio/Agriculture with at least 50% marks.",
			"**Accepted Exams:** PAU CET.",
			"**Approx. Fees:** ₹1.24 Lakh.",
			"**Curriculum:** ICAR aligned.",
		},
	},
	{
		Key:      "b.tech",
		Icon:     "⚙️",
		Title:    "B.Tech. Agricultural Engineering",
		Keywords: []string{"btech", "bachelor of technology", "engineering", "engg"},
		Details: []string{
			"**Eligibility:** 10+2 with PCM, ≥50% marks.",
			"**Accepted Exams:** JEE Main, PAU CET.",
			"**Approx. Fees:** ₹1.73 Lakh.",
			"**Curriculum:** ICAR aligned.",
		},
	},
	{
		Key:      "m.sc",
		Icon:     "🔬",
		Title:    "M.Sc. (Master of Science)",
		Keywords: []string{"master of science", "msc"},
		Details: []string{
			"**Eligibility:** Bachelor's degree in a relevant field with an OCPA of 6.0/10.0 or 60% marks.",
			"**Accepted Exams:** PAU Master's Entrance Test (MET).",
			"**Approx. Fees:** ₹76,880 - ₹1.9 Lakh per year.",
		},
	},
	{
		Key:      "m.tech",
		Icon:     "🔬",
		Title:    "M.Tech. (Master of Technology)",
		Keywords: []string{"master of technology", "mtech"},
		Details: []string{
			"**Eligibility:** B.Tech. degree in a relevant field with a minimum CGPA of 6.0/10.0 or 60% marks.",
			"**Accepted Exams:** PAU Master's Entrance Test (MET), ICAR AIEEA.",
			"**Approx. Fees:** ₹76,880 (per year).",
		},
	},
}

// Programs returns a copy of the program table in lookup order.
func Programs() []ProgramRecord {
	out := make([]ProgramRecord, len(programs))
	copy(out, programs)
	return out
}

// FindProgram resolves text to a program. An exact key match wins outright;
// otherwise the first record whose alias occurs in text is returned.
func FindProgram(text string) (ProgramRecord, bool) {
	for _, p := range programs {
		if text == p.Key {
			return p, true
		}
	}
	for _, p := range programs {
		if containsAny(text, p.Keywords...) {
			return p, true
		}
	}
	return ProgramRecord{}, false
}

func (p ProgramRecord) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s:**", p.Icon, p.Title)
	for _, d := range p.Details {
		b.WriteString("\n• ")
		b.WriteString(d)
	}
	return b.String()
}

func programDetailReply(p ProgramRecord) reply {
	return reply{
		Response: Response{
			Text:           p.render(),
			ExpectFollowUp: true,
			Topic:          Topic{Kind: TopicProgramDetail, Ref: p.Key},
		},
		Next: ContextNone,
	}
}
