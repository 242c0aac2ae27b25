package assistant

import (
	"strings"
	"testing"
)

func TestReplyMatchesKeywords(t *testing.T) {
	cases := []struct {
		question string
		want     string
	}{
		{"What are the side effects of Metformin?", "side effects can include"},
		{"how much dosage should I take", "follow your doctor's prescription"},
		{"any interaction with aspirin?", "interactions can be serious"},
		{"can you set a reminder", "Desktop notifications"},
		{"where is the best storage for pills", "cool, dry place"},
		{"I had a missed dose yesterday", "take it as soon as you remember"},
		{"tips for my blood pressure meds", "Lisinopril"},
		{"questions about diabetes pills", "Metformin"},
		{"my cholesterol medication", "Atorvastatin"},
	}
	for _, tc := range cases {
		got := Reply(tc.question)
		if !strings.Contains(got, tc.want) {
			t.Errorf("Reply(%q) = %q, want it to contain %q", tc.question, got, tc.want)
		}
	}
}

func TestReplyIsCaseInsensitive(t *testing.T) {
	if got := Reply("SIDE EFFECT info please"); !strings.Contains(got, "nausea") {
		t.Fatalf("Reply = %q, want side-effect answer", got)
	}
}

func TestReplyFallsBack(t *testing.T) {
	got := Reply("what's the weather like")
	if !strings.Contains(got, "healthcare provider") {
		t.Fatalf("Reply = %q, want fallback answer", got)
	}
}

func TestReplyFirstMatchWins(t *testing.T) {
	// Mentions both side effects and dosage; the earlier rule answers.
	got := Reply("side effect at this dosage?")
	if !strings.Contains(got, "nausea") {
		t.Fatalf("Reply = %q, want side-effect answer to win", got)
	}
}
