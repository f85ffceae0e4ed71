package dashboard

// Stats is the headline card block of the admin dashboard.
type Stats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalKhandans    int64   `json:"total_khandans"`
	TotalDonations   int64   `json:"total_donations"`
	CompletedAmount  float64 `json:"completed_amount"`
	PendingCount     int64   `json:"pending_count"`
	FailedCount      int64   `json:"failed_count"`
	DistinctDonors   int64   `json:"distinct_donors"`
	TotalNotices     int64   `json:"total_notices"`
	TotalTeamMembers int64   `json:"total_team_members"`
}

// MonthlyHistogram always carries twelve buckets, January first, even
// for a year with no records.
type MonthlyHistogram struct {
	Year    int       `json:"year"`
	Counts  []int64   `json:"counts"`
	Amounts []float64 `json:"amounts,omitempty"`
}

// CategoryBreakdown is one slice of the category-wise donation chart.
type CategoryBreakdown struct {
	CategoryName string  `json:"category_name"`
	Count        int64   `json:"count"`
	Amount       float64 `json:"amount"`
}

type Overview struct {
	Stats             Stats               `json:"stats"`
	UserHistogram     MonthlyHistogram    `json:"user_histogram"`
	DonationHistogram MonthlyHistogram    `json:"donation_histogram"`
	ByCategory        []CategoryBreakdown `json:"by_category"`
	AvailableYears    []int               `json:"available_years"`
}
