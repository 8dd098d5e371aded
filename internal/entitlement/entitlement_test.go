package entitlement

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		value string
		want  Plan
	}{
		{"1", PlanPlus},
		{"true", PlanPlus},
		{"YES", PlanPlus},
		{" on ", PlanPlus},
		{"0", PlanFree},
		{"false", PlanFree},
		{"", PlanFree},
		{"maybe", PlanFree},
	}
	for _, tc := range cases {
		t.Setenv("COACHIZ_PLUS", tc.value)
		if got := Resolve(); got != tc.want {
			t.Errorf("Resolve() with %q = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestPlanHelpers(t *testing.T) {
	if !PlanPlus.Subscribed() || PlanFree.Subscribed() {
		t.Error("Subscribed flags wrong")
	}
	if PlanPlus.DisplayName() != "PLUS" || PlanFree.DisplayName() != "Free" {
		t.Error("display names wrong")
	}
}
