package dto

// GetRetentionRequest represents a retention matrix query request.
// Months use the YYYY-MM form; MaxIndex 0 means "use the default window".
type GetRetentionRequest struct {
	From     string `form:"from" example:"2011-01"`
	To       string `form:"to" example:"2011-12"`
	MaxIndex int    `form:"max_index" example:"12"`
}

// GetChurnRequest represents a churn query request. ThresholdDays 0 means
// the default 90-day inactivity window.
type GetChurnRequest struct {
	ThresholdDays int `form:"threshold_days" example:"90"`
}
