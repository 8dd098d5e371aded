// Package entitlement resolves the learner's plan for a visit. Billing
// lives outside this program; all we get is a flag.
package entitlement

import (
	"os"
	"strings"
)

// Plan is the learner's subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPlus Plan = "plus"
)

// DisplayName returns a human-readable label for the plan.
func (p Plan) DisplayName() string {
	switch p {
	case PlanPlus:
		return "PLUS"
	default:
		return "Free"
	}
}

// Subscribed reports whether the plan bypasses credit limits.
func (p Plan) Subscribed() bool {
	return p == PlanPlus
}

// Resolve reads the plan from the COACHIZ_PLUS environment variable.
// Anything truthy ("1", "true", "yes", "on") means PLUS; everything
// else, including unset, means free.
func Resolve() Plan {
	return fromValue(os.Getenv("COACHIZ_PLUS"))
}

func fromValue(v string) Plan {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return PlanPlus
	}
	return PlanFree
}
