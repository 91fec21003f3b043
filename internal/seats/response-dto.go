package seats

import "github.com/google/uuid"

// StatusResponse is the minimal payload for status reads, used by the
// booking ledger's registry client.
type StatusResponse struct {
	SeatID uuid.UUID  `json:"seat_id"`
	Status SeatStatus `json:"status"`
}

type ListResponse struct {
	Seats []Seat `json:"seats"`
	Total int    `json:"total"`
}
