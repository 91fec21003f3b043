package seats

type CreateSeatRequest struct {
	SeatNumber string `json:"seat_number" binding:"required,max=20"`
	Section    string `json:"section" binding:"required,max=10"`
	RowNumber  int    `json:"row_number" binding:"required,min=1"`
	ColNumber  int    `json:"col_number" binding:"required,min=1"`
	SeatType   string `json:"seat_type" binding:"omitempty,oneof=STANDARD STAFF LOCKER"`
}

type UpdateSeatRequest struct {
	Section   *string `json:"section" binding:"omitempty,max=10"`
	RowNumber *int    `json:"row_number" binding:"omitempty,min=1"`
	ColNumber *int    `json:"col_number" binding:"omitempty,min=1"`
	SeatType  *string `json:"seat_type" binding:"omitempty,oneof=STANDARD STAFF LOCKER"`
}

// SetStatusRequest drives PATCH /seats/:id/status. AdminOverride is honored
// only for callers holding the admin role.
type SetStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=AVAILABLE CLAIMED HOLD MAINTENANCE"`
	AdminOverride bool   `json:"admin_override"`
}
