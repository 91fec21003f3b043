package seats

// SeatStatus is the occupancy state published by the registry.
type SeatStatus string

const (
	StatusAvailable   SeatStatus = "AVAILABLE"
	StatusClaimed     SeatStatus = "CLAIMED"
	StatusHold        SeatStatus = "HOLD"
	StatusMaintenance SeatStatus = "MAINTENANCE"
)

// IsValid reports whether s is a known status.
func (s SeatStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusClaimed, StatusHold, StatusMaintenance:
		return true
	}
	return false
}

// Bookable reports whether a seat in this status can accept a claim from a
// regular caller. MAINTENANCE and HOLD are administrative states and only an
// admin override may move a seat out of them.
func (s SeatStatus) Bookable() bool {
	return s == StatusAvailable || s == StatusClaimed
}
