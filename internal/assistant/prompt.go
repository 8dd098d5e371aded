package assistant

import (
	"fmt"
	"strings"

	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/program"
)

// skillGuidance adjusts the coach's register per skill level.
var skillGuidance = map[coaching.SkillLevel]string{
	coaching.SkillBeginner:     "The learner is a beginner. Avoid jargon, explain one concept at a time, and suggest a single small first step.",
	coaching.SkillIntermediate: "The learner has some experience. Build on fundamentals they already know and offer concrete techniques.",
	coaching.SkillAdvanced:     "The learner is advanced. Be direct and dense; focus on edge cases, trade-offs, and refinements.",
}

// buildSystemPrompt composes the coach persona for one request. The
// session id is embedded so provider-side logs can be correlated with
// the local event log.
func buildSystemPrompt(prog *program.Program, req coaching.AskRequest) string {
	var b strings.Builder

	b.WriteString("You are an encouraging personal coach")
	if prog != nil && prog.ID != program.GeneralID {
		fmt.Fprintf(&b, " for the %q program", prog.Name)
	}
	b.WriteString(". Answer the learner's question helpfully and honestly.\n\n")

	if prog != nil && prog.ID != program.GeneralID && prog.Description != "" {
		fmt.Fprintf(&b, "Program focus: %s\n\n", prog.Description)
	}

	if guidance, ok := skillGuidance[req.SkillLevel]; ok {
		b.WriteString(guidance)
		b.WriteString("\n\n")
	}

	b.WriteString("Rules:\n")
	b.WriteString("- Stay on coaching topics; decline requests to do unrelated work.\n")
	b.WriteString("- Keep answers under 250 words unless the question demands more.\n")
	b.WriteString("- Cite sources only when you are confident they exist.\n\n")

	fmt.Fprintf(&b, "Session: %s", req.SessionID)

	return b.String()
}
