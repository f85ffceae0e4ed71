package dashboard

import (
	"context"
	"time"
)

// defaultFloorYear caps how far back the year picker reaches when the
// stores hold no older records.
const defaultFloorYear = 2022

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
	GetUserHistogram(ctx context.Context, year int) (*MonthlyHistogram, error)
	GetDonationHistogram(ctx context.Context, year int) (*MonthlyHistogram, error)
	GetCategoryBreakdown(ctx context.Context) ([]CategoryBreakdown, error)
	GetAvailableYears(ctx context.Context) ([]int, error)
	GetOverview(ctx context.Context, year int) (*Overview, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.TotalUsers, err = s.repo.CountRows(ctx, "users"); err != nil {
		return nil, err
	}
	if stats.TotalKhandans, err = s.repo.CountRows(ctx, "khandans"); err != nil {
		return nil, err
	}
	if stats.TotalDonations, err = s.repo.CountRows(ctx, "donations"); err != nil {
		return nil, err
	}
	if stats.TotalNotices, err = s.repo.CountRows(ctx, "notices"); err != nil {
		return nil, err
	}
	if stats.TotalTeamMembers, err = s.repo.CountRows(ctx, "team_members"); err != nil {
		return nil, err
	}
	if stats.PendingCount, err = s.repo.CountDonationsByStatus(ctx, "pending"); err != nil {
		return nil, err
	}
	if stats.FailedCount, err = s.repo.CountDonationsByStatus(ctx, "failed"); err != nil {
		return nil, err
	}
	if stats.CompletedAmount, err = s.repo.CompletedDonationSum(ctx); err != nil {
		return nil, err
	}
	if stats.DistinctDonors, err = s.repo.DistinctDonorCount(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func normalizeYear(year int) int {
	if year <= 0 {
		return time.Now().Year()
	}
	return year
}

func (s *service) GetUserHistogram(ctx context.Context, year int) (*MonthlyHistogram, error) {
	year = normalizeYear(year)
	counts, err := s.repo.MonthlyCounts(ctx, "users", year)
	if err != nil {
		return nil, err
	}
	return &MonthlyHistogram{Year: year, Counts: counts}, nil
}

func (s *service) GetDonationHistogram(ctx context.Context, year int) (*MonthlyHistogram, error) {
	year = normalizeYear(year)
	counts, amounts, err := s.repo.MonthlyDonationTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	return &MonthlyHistogram{Year: year, Counts: counts, Amounts: amounts}, nil
}

func (s *service) GetCategoryBreakdown(ctx context.Context) ([]CategoryBreakdown, error) {
	rows, err := s.repo.CategoryBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategoryBreakdown{}
	}
	return rows, nil
}

// GetAvailableYears spans from the earliest record (floored at the
// default) through the current year, ascending.
func (s *service) GetAvailableYears(ctx context.Context) ([]int, error) {
	earliest, err := s.repo.EarliestRecordYear(ctx)
	if err != nil {
		return nil, err
	}

	start := defaultFloorYear
	if earliest > 0 && earliest < start {
		start = earliest
	}

	current := time.Now().Year()
	if start > current {
		start = current
	}

	years := make([]int, 0, current-start+1)
	for y := start; y <= current; y++ {
		years = append(years, y)
	}
	return years, nil
}

func (s *service) GetOverview(ctx context.Context, year int) (*Overview, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	userHist, err := s.GetUserHistogram(ctx, year)
	if err != nil {
		return nil, err
	}
	donationHist, err := s.GetDonationHistogram(ctx, year)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.GetCategoryBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	years, err := s.GetAvailableYears(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Stats:             *stats,
		UserHistogram:     *userHist,
		DonationHistogram: *donationHist,
		ByCategory:        byCategory,
		AvailableYears:    years,
	}, nil
}
