package service

import (
	"testing"

	"github.com/channelscope/channelscope-go/internal/model"
)

func TestNextPhase(t *testing.T) {
	cases := []struct {
		current int
		action  string
		want    int
	}{
		{1, ActionContinue, 2},
		{2, ActionContinue, 3},
		{5, ActionContinue, 6},
		{6, ActionContinue, 6},
		{1, ActionRefine, 1},
		{4, ActionRefine, 4},
		{6, ActionRefine, 6},
		{4, ActionAnotherIdea, 4},
		{2, ActionAnotherIdea, 3},
		{6, ActionAnotherIdea, 6},
		{3, "unknown", 4},
		{6, "unknown", 6},
		{3, "", 4},
	}

	for _, c := range cases {
		got := NextPhase(c.current, c.action)
		if got != c.want {
			t.Errorf("NextPhase(%d, %q) = %d, want %d", c.current, c.action, got, c.want)
		}
	}
}

func TestNextPhase_StaysInRange(t *testing.T) {
	actions := []string{ActionContinue, ActionRefine, ActionAnotherIdea, "garbage", ""}
	for current := 1; current <= model.NumPhases; current++ {
		for _, action := range actions {
			got := NextPhase(current, action)
			if got < 1 || got > model.NumPhases {
				t.Errorf("NextPhase(%d, %q) = %d, out of range", current, action, got)
			}
		}
	}
}

func TestPhaseCatalog(t *testing.T) {
	wantNames := []string{
		"Current Reality Check",
		"Trend Analysis",
		"Opportunity Mapping",
		"Content Ideas",
		"Execution Strategy",
		"Long-Term Roadmap",
	}

	for n := 1; n <= model.NumPhases; n++ {
		spec := Phase(n)
		if spec.Number != n {
			t.Errorf("Phase(%d).Number = %d", n, spec.Number)
		}
		if spec.Name != wantNames[n-1] {
			t.Errorf("Phase(%d).Name = %q, want %q", n, spec.Name, wantNames[n-1])
		}
		if len(spec.Required) == 0 {
			t.Errorf("Phase(%d) has no required fields", n)
		}
		if spec.Instructions == "" {
			t.Errorf("Phase(%d) has no instructions", n)
		}
		if spec.Accumulating != (n == 4) {
			t.Errorf("Phase(%d).Accumulating = %v", n, spec.Accumulating)
		}
	}
}

func TestPhaseName_OutOfRange(t *testing.T) {
	if got := PhaseName(0); got != "" {
		t.Errorf("PhaseName(0) = %q, want empty", got)
	}
	if got := PhaseName(7); got != "" {
		t.Errorf("PhaseName(7) = %q, want empty", got)
	}
}
