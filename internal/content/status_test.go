package content

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusReviewNeeded, true},
		{StatusPending, StatusReadyForDelivery, true},
		{StatusReviewNeeded, StatusReadyForDelivery, true},
		{StatusReviewNeeded, StatusRejected, true},
		{StatusReadyForDelivery, StatusDelivered, true},
		{StatusReadyForDelivery, StatusRejected, true},
		{StatusPending, StatusDelivered, false},
		{StatusDelivered, StatusRejected, false},
		{StatusRejected, StatusReadyForDelivery, false},
		{StatusDelivered, StatusReadyForDelivery, false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("canTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
