package shifts

type CreateShiftRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	StartTime   string  `json:"start_time" binding:"required,timehhmm"`
	EndTime     string  `json:"end_time" binding:"required,timehhmm"`
	BasePrice   float64 `json:"base_price" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=255"`
}

type UpdateShiftRequest struct {
	StartTime   *string  `json:"start_time" binding:"omitempty,timehhmm"`
	EndTime     *string  `json:"end_time" binding:"omitempty,timehhmm"`
	BasePrice   *float64 `json:"base_price" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
}
