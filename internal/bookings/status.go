package bookings

// BookingStatus is the ledger-side lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending          BookingStatus = "PENDING"
	StatusPaymentSubmitted BookingStatus = "PAYMENT_SUBMITTED"
	StatusConfirmed        BookingStatus = "CONFIRMED"
	StatusCancelled        BookingStatus = "CANCELLED"
	StatusExpired          BookingStatus = "EXPIRED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaymentSubmitted, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether the status is absorbing. Terminal bookings never
// transition again and do not hold their seat.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// HoldsSeat reports whether a booking in this status occupies its
// (seat, shift) slot. These are exactly the statuses covered by the partial
// unique index.
func (s BookingStatus) HoldsSeat() bool {
	return s == StatusPending || s == StatusPaymentSubmitted || s == StatusConfirmed
}

// CanTransitionTo reports whether the regular (non-admin) state machine
// permits moving from s to target. EXPIRED is reachable only through the
// admin override path, which bypasses this check.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusPaymentSubmitted || target == StatusCancelled
	case StatusPaymentSubmitted:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCancelled
	default:
		return false
	}
}

func allStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusPaymentSubmitted, StatusConfirmed, StatusCancelled, StatusExpired}
}

// activeStatuses are the statuses holding a seat, in index order.
func activeStatuses() []BookingStatus {
	var result []BookingStatus
	for _, s := range allStatuses() {
		if s.HoldsSeat() {
			result = append(result, s)
		}
	}
	return result
}

// transitionSourcesOf derives the statuses allowed to move to target from the
// state machine, so the repository guards cannot drift from CanTransitionTo.
func transitionSourcesOf(target BookingStatus) []BookingStatus {
	var result []BookingStatus
	for _, s := range allStatuses() {
		if s.CanTransitionTo(target) {
			result = append(result, s)
		}
	}
	return result
}
