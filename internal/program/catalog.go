package program

import (
	"fmt"
	"sort"
)

// Source provides read-only access to programs. It stands in for the
// platform's program service; the coaching subsystem never mutates
// program content.
type Source interface {
	// Program returns the program with the given id.
	Program(id string) (*Program, error)

	// All returns every known program in display order.
	All() []Program
}

// Catalog is an in-memory Source seeded with the built-in programs and,
// optionally, locally authored ones.
type Catalog struct {
	programs map[string]Program
	order    []string
}

// NewCatalog builds a Catalog from the built-in seed plus any extra
// programs. Extras with a duplicate id replace the seeded entry.
func NewCatalog(extra ...Program) *Catalog {
	c := &Catalog{programs: make(map[string]Program)}
	for _, p := range seedPrograms() {
		c.add(p)
	}
	for _, p := range extra {
		c.add(p)
	}
	return c
}

func (c *Catalog) add(p Program) {
	if _, exists := c.programs[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.programs[p.ID] = p
}

func (c *Catalog) Program(id string) (*Program, error) {
	p, ok := c.programs[id]
	if !ok {
		return nil, fmt.Errorf("unknown program %q", id)
	}
	return &p, nil
}

func (c *Catalog) All() []Program {
	out := make([]Program, 0, len(c.programs))
	for _, id := range c.order {
		out = append(out, c.programs[id])
	}
	return out
}

// IDs returns all program ids, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.programs))
	for id := range c.programs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// seedPrograms returns the built-in program content. The general program
// has no guided content; coaching there is free-form only.
func seedPrograms() []Program {
	return []Program{
		{
			ID:          GeneralID,
			Name:        "General Coaching",
			Description: "Open coaching not tied to a specific program",
			GuidedQuestions: GuidedQuestionSet{
				Enabled: false,
			},
		},
		{
			ID:          "study-skills",
			Name:        "Study Skills Foundations",
			Description: "Planning, note-taking, and retention techniques",
			GuidedQuestions: GuidedQuestionSet{
				Enabled:      true,
				FreeAttempts: 3,
				Questions: []GuidedQuestion{
					{
						Question: "How long should a single study session be?",
						Answer:   "Aim for 25-50 minute blocks with short breaks in between. Past the one-hour mark, retention drops sharply; two focused half-hour sessions beat one unfocused two-hour session.",
					},
					{
						Question: "What is active recall and why does it work?",
						Answer:   "Active recall means testing yourself from memory instead of re-reading. Retrieving information strengthens the memory trace far more than passive review, which mostly builds a false sense of familiarity.",
					},
					{
						Question: "How do I stop procrastinating on big assignments?",
						Answer:   "Break the assignment into tasks small enough to finish in one sitting, then schedule only the first one. Starting is the hard part; a two-minute entry task removes the activation barrier.",
					},
					{
						Question: "Should I study with music on?",
						Answer:   "For reading and writing, silence or instrumental music works best; lyrics compete for the same verbal processing you need. For repetitive drill work, familiar music is usually harmless.",
					},
					{
						Question: "How often should I review old material?",
						Answer:   "Use expanding intervals: review after one day, then three, then a week, then a month. Spacing reviews out forces a little forgetting, and relearning at that point is what cements the memory.",
					},
				},
			},
		},
		{
			ID:          "critical-thinking",
			Name:        "Critical Thinking Essentials",
			Description: "Argument analysis, evidence evaluation, and common fallacies",
			GuidedQuestions: GuidedQuestionSet{
				Enabled:      true,
				FreeAttempts: 2,
				Questions: []GuidedQuestion{
					{
						Question: "What makes an argument valid versus sound?",
						Answer:   "An argument is valid when the conclusion follows from the premises, and sound when it is valid AND the premises are actually true. Validity is about structure; soundness adds truth.",
					},
					{
						Question: "What is the difference between correlation and causation?",
						Answer:   "Correlation means two things move together; causation means one produces the other. Correlated variables may share a hidden common cause, or the relationship may run in the opposite direction than assumed.",
					},
					{
						Question: "How do I spot a straw man argument?",
						Answer:   "Look for a restatement of the opposing view that is easier to attack than what was actually said. If the rebuttal targets a claim nobody made, it's a straw man.",
					},
					{
						Question: "When is an appeal to authority legitimate?",
						Answer:   "When the authority has genuine expertise in the specific field, the claim is inside that field, and experts broadly agree. Citing a physicist on nutrition, or one dissenting voice against consensus, is not legitimate support.",
					},
				},
			},
		},
	}
}
