package bookings

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to payment submitted", StatusPending, StatusPaymentSubmitted, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending straight to confirmed", StatusPending, StatusConfirmed, false},
		{"payment submitted to confirmed", StatusPaymentSubmitted, StatusConfirmed, true},
		{"payment submitted to cancelled", StatusPaymentSubmitted, StatusCancelled, true},
		{"payment submitted back to pending", StatusPaymentSubmitted, StatusPending, false},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed re-confirmed", StatusConfirmed, StatusConfirmed, false},
		{"cancelled is absorbing", StatusCancelled, StatusPending, false},
		{"cancelled cannot confirm", StatusCancelled, StatusConfirmed, false},
		{"expired is absorbing", StatusExpired, StatusPending, false},
		{"expired cannot cancel", StatusExpired, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestHoldsSeat(t *testing.T) {
	holding := []BookingStatus{StatusPending, StatusPaymentSubmitted, StatusConfirmed}
	for _, s := range holding {
		if !s.HoldsSeat() {
			t.Errorf("%s should hold its seat", s)
		}
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}

	released := []BookingStatus{StatusCancelled, StatusExpired}
	for _, s := range released {
		if s.HoldsSeat() {
			t.Errorf("%s should not hold a seat", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestTransitionSourcesOf(t *testing.T) {
	tests := []struct {
		target BookingStatus
		want   []BookingStatus
	}{
		{StatusPaymentSubmitted, []BookingStatus{StatusPending}},
		{StatusConfirmed, []BookingStatus{StatusPaymentSubmitted}},
		{StatusCancelled, []BookingStatus{StatusPending, StatusPaymentSubmitted, StatusConfirmed}},
		{StatusExpired, nil},
		{StatusPending, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			got := transitionSourcesOf(tt.target)
			if len(got) != len(tt.want) {
				t.Fatalf("sources of %s = %v, want %v", tt.target, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sources of %s = %v, want %v", tt.target, got, tt.want)
				}
			}
		})
	}
}

func TestActiveStatusesMatchSeatHolders(t *testing.T) {
	active := activeStatuses()
	if len(active) != 3 {
		t.Fatalf("expected 3 active statuses, got %v", active)
	}
	for _, s := range active {
		if !s.HoldsSeat() {
			t.Errorf("%s listed active but does not hold a seat", s)
		}
	}
}

func TestIsValid(t *testing.T) {
	if BookingStatus("UNKNOWN").IsValid() {
		t.Error("UNKNOWN should not be a valid status")
	}
	if !StatusPaymentSubmitted.IsValid() {
		t.Error("PAYMENT_SUBMITTED should be valid")
	}
}
