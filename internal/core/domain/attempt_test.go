package domain

import "testing"

func TestFeedbackFor(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, FeedbackExcellent},
		{90, FeedbackExcellent},
		{89.9, FeedbackGood},
		{75, FeedbackGood},
		{74.9, FeedbackAverage},
		{60, FeedbackAverage},
		{59.9, FeedbackNeedsImprovement},
		{0, FeedbackNeedsImprovement},
	}

	for _, tc := range cases {
		if got := FeedbackFor(tc.percentage); got != tc.want {
			t.Fatalf("FeedbackFor(%v) = %q, want %q", tc.percentage, got, tc.want)
		}
	}
}

func TestQuestionSanitized(t *testing.T) {
	q := Question{
		ID:            "q-1",
		Text:          "What is a goroutine?",
		CorrectAnswer: "opt-1",
		Explanation:   "lightweight thread",
		Options: []QuestionOption{
			{ID: "opt-1", Text: "lightweight thread", Explanation: "managed by the runtime"},
			{ID: "opt-2", Text: "OS thread"},
		},
	}

	s := q.Sanitized()
	if s.CorrectAnswer != "" || s.Explanation != "" {
		t.Fatalf("sanitized question leaked answer material: %+v", s)
	}
	for _, o := range s.Options {
		if o.Explanation != "" {
			t.Fatalf("sanitized option leaked explanation: %+v", o)
		}
	}
	// The original must be untouched.
	if q.CorrectAnswer != "opt-1" || q.Options[0].Explanation == "" {
		t.Fatalf("Sanitized mutated the receiver: %+v", q)
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole("ORDINARY"); !ok {
		t.Fatalf("ORDINARY must parse")
	}
	if _, ok := ParseRole("MANAGER"); !ok {
		t.Fatalf("MANAGER must parse")
	}
	for _, bad := range []string{"", "manager", "ADMIN", "ordinary "} {
		if _, ok := ParseRole(bad); ok {
			t.Fatalf("%q must not parse", bad)
		}
	}
}
