package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"from must not be after to"`
}

// RetentionCellData is one cell of the retention matrix. RetentionRate is
// null for an empty cohort.
type RetentionCellData struct {
	CohortMonth     string   `json:"cohort_month" example:"2011-01"`
	CohortIndex     uint16   `json:"cohort_index" example:"1"`
	CohortSize      uint64   `json:"cohort_size" example:"300"`
	ActiveCustomers uint64   `json:"active_customers" example:"200"`
	RetentionRate   *float64 `json:"retention_rate" example:"66.67"`
}

// GetRetentionResponse represents the retention matrix query response
type GetRetentionResponse struct {
	From     string              `json:"from,omitempty" example:"2011-01"`
	To       string              `json:"to,omitempty" example:"2011-12"`
	MaxIndex int                 `json:"max_index" example:"12"`
	Cells    []RetentionCellData `json:"cells"`
}

// RepeatRateResponse represents the repeat purchase rate response
type RepeatRateResponse struct {
	TotalCustomers  uint64   `json:"total_customers" example:"4000"`
	RepeatCustomers uint64   `json:"repeat_customers" example:"2600"`
	RepeatRate      *float64 `json:"repeat_rate" example:"65.00"`
}

// PurchaseTimingResponse represents first-to-second purchase gap statistics
type PurchaseTimingResponse struct {
	MeasuredCustomers uint64   `json:"measured_customers" example:"2600"`
	MeanDays          *float64 `json:"mean_days" example:"42.35"`
	MedianDays        *float64 `json:"median_days" example:"30"`
}

// ChurnResponse represents the churn rate response
type ChurnResponse struct {
	ThresholdDays    int      `json:"threshold_days" example:"90"`
	TotalCustomers   uint64   `json:"total_customers" example:"4000"`
	ChurnedCustomers uint64   `json:"churned_customers" example:"1400"`
	ChurnRate        *float64 `json:"churn_rate" example:"35.00"`
	ActiveRate       *float64 `json:"active_rate" example:"65.00"`
}

// CohortBuyerData is the one-time vs repeat buyer split for one cohort
type CohortBuyerData struct {
	CohortMonth   string   `json:"cohort_month" example:"2011-01"`
	CohortSize    uint64   `json:"cohort_size" example:"300"`
	OneTimeBuyers uint64   `json:"one_time_buyers" example:"120"`
	RepeatBuyers  uint64   `json:"repeat_buyers" example:"180"`
	OneTimeShare  *float64 `json:"one_time_share" example:"40.00"`
}

// GetOneTimeBuyersResponse represents the per-cohort buyer split response
type GetOneTimeBuyersResponse struct {
	Cohorts []CohortBuyerData `json:"cohorts"`
}

// CohortRevenueData is acquisition and first-month revenue for one cohort
type CohortRevenueData struct {
	CohortMonth         string  `json:"cohort_month" example:"2011-01"`
	NewCustomers        uint64  `json:"new_customers" example:"300"`
	FirstMonthRevenue   float64 `json:"first_month_revenue" example:"15230.50"`
	CumulativeCustomers uint64  `json:"cumulative_customers" example:"1200"`
}

// GetCohortRevenueResponse represents the cohort revenue response
type GetCohortRevenueResponse struct {
	Cohorts []CohortRevenueData `json:"cohorts"`
}
