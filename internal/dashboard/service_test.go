package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rowCounts    map[string]int64
	statusCounts map[string]int64
	completedSum float64
	donors       int64
	userMonths   []int64
	donMonths    []int64
	donAmounts   []float64
	breakdown    []CategoryBreakdown
	earliestYear int
}

func emptyRepo() *fakeRepo {
	return &fakeRepo{
		rowCounts:    map[string]int64{},
		statusCounts: map[string]int64{},
		userMonths:   make([]int64, 12),
		donMonths:    make([]int64, 12),
		donAmounts:   make([]float64, 12),
	}
}

func (r *fakeRepo) CountRows(ctx context.Context, table string) (int64, error) {
	return r.rowCounts[table], nil
}

func (r *fakeRepo) CountDonationsByStatus(ctx context.Context, status string) (int64, error) {
	return r.statusCounts[status], nil
}

func (r *fakeRepo) CompletedDonationSum(ctx context.Context) (float64, error) {
	return r.completedSum, nil
}

func (r *fakeRepo) DistinctDonorCount(ctx context.Context) (int64, error) {
	return r.donors, nil
}

func (r *fakeRepo) MonthlyCounts(ctx context.Context, table string, year int) ([]int64, error) {
	return r.userMonths, nil
}

func (r *fakeRepo) MonthlyDonationTotals(ctx context.Context, year int) ([]int64, []float64, error) {
	return r.donMonths, r.donAmounts, nil
}

func (r *fakeRepo) CategoryBreakdown(ctx context.Context) ([]CategoryBreakdown, error) {
	return r.breakdown, nil
}

func (r *fakeRepo) EarliestRecordYear(ctx context.Context) (int, error) {
	return r.earliestYear, nil
}

func TestGetStats(t *testing.T) {
	repo := emptyRepo()
	repo.rowCounts = map[string]int64{
		"users": 40, "khandans": 12, "donations": 90, "notices": 5, "team_members": 8,
	}
	repo.statusCounts = map[string]int64{"pending": 3, "failed": 2}
	repo.completedSum = 12500.50
	repo.donors = 31

	stats, err := NewService(repo).GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(40), stats.TotalUsers)
	assert.Equal(t, int64(12), stats.TotalKhandans)
	assert.Equal(t, int64(90), stats.TotalDonations)
	assert.Equal(t, int64(3), stats.PendingCount)
	assert.Equal(t, int64(2), stats.FailedCount)
	assert.Equal(t, 12500.50, stats.CompletedAmount)
	assert.Equal(t, int64(31), stats.DistinctDonors)
}

func TestHistogramAlwaysTwelveBuckets(t *testing.T) {
	svc := NewService(emptyRepo())

	hist, err := svc.GetUserHistogram(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, hist.Year)
	assert.Len(t, hist.Counts, 12)
	for _, c := range hist.Counts {
		assert.Zero(t, c)
	}
}

func TestHistogramDefaultsToCurrentYear(t *testing.T) {
	svc := NewService(emptyRepo())

	hist, err := svc.GetDonationHistogram(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), hist.Year)
	assert.Len(t, hist.Counts, 12)
	assert.Len(t, hist.Amounts, 12)
}

func TestCategoryBreakdownNeverNil(t *testing.T) {
	svc := NewService(emptyRepo())

	rows, err := svc.GetCategoryBreakdown(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGetAvailableYears(t *testing.T) {
	current := time.Now().Year()

	t.Run("no records floors at default", func(t *testing.T) {
		years, err := NewService(emptyRepo()).GetAvailableYears(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, years)
		assert.Equal(t, defaultFloorYear, years[0])
		assert.Equal(t, current, years[len(years)-1])
	})

	t.Run("older records extend the range", func(t *testing.T) {
		repo := emptyRepo()
		repo.earliestYear = 2019
		years, err := NewService(repo).GetAvailableYears(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2019, years[0])
		assert.Equal(t, current, years[len(years)-1])
		assert.Len(t, years, current-2019+1)
	})

	t.Run("newer records keep the floor", func(t *testing.T) {
		repo := emptyRepo()
		repo.earliestYear = current
		years, err := NewService(repo).GetAvailableYears(context.Background())
		require.NoError(t, err)
		assert.Equal(t, defaultFloorYear, years[0])
	})
}

func TestGetOverview(t *testing.T) {
	repo := emptyRepo()
	repo.rowCounts["users"] = 10
	repo.breakdown = []CategoryBreakdown{{CategoryName: "Sadqa", Count: 4, Amount: 800}}

	overview, err := NewService(repo).GetOverview(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, int64(10), overview.Stats.TotalUsers)
	assert.Equal(t, 2024, overview.UserHistogram.Year)
	assert.Equal(t, 2024, overview.DonationHistogram.Year)
	assert.Len(t, overview.ByCategory, 1)
	assert.NotEmpty(t, overview.AvailableYears)
}
