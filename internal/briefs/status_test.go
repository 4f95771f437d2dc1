package briefs

import "testing"

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPaid, StatusProcessing, true},
		{StatusProcessing, StatusCompleted, true},
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusFailed, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusPending, false},
		{StatusPaid, StatusPending, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusProcessing, false},
		{StatusFailed, StatusCompleted, false},
		{StatusPaid, StatusPaid, true},
		{"bogus", StatusPaid, false},
		{StatusPending, "bogus", false},
	}
	for _, tc := range cases {
		if got := canAdvance(tc.from, tc.to); got != tc.want {
			t.Errorf("canAdvance(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
