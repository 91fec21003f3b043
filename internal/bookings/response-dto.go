package bookings

// RevenueResponse reports confirmed-booking revenue.
type RevenueResponse struct {
	TotalRevenue      float64 `json:"total_revenue"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
}

type ListResponse struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
}
