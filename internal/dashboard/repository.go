package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CountRows(ctx context.Context, table string) (int64, error)
	CountDonationsByStatus(ctx context.Context, status string) (int64, error)
	CompletedDonationSum(ctx context.Context) (float64, error)
	DistinctDonorCount(ctx context.Context) (int64, error)

	MonthlyCounts(ctx context.Context, table string, year int) ([]int64, error)
	MonthlyDonationTotals(ctx context.Context, year int) ([]int64, []float64, error)
	CategoryBreakdown(ctx context.Context) ([]CategoryBreakdown, error)
	EarliestRecordYear(ctx context.Context) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).Count(&count).Error
	return count, err
}

func (r *repository) CountDonationsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("donations").
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) CompletedDonationSum(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Table("donations").
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", "completed").
		Scan(&sum).Error
	return sum, err
}

func (r *repository) DistinctDonorCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("donations").
		Select("COUNT(DISTINCT user_id)").
		Where("status = ?", "completed").
		Scan(&count).Error
	return count, err
}

type monthlyRow struct {
	Month  int
	Count  int64
	Amount float64
}

func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(1, 0, 0)
}

// MonthlyCounts buckets row creation by calendar month. The result is
// always twelve entries, missing months filled with zero.
func (r *repository) MonthlyCounts(ctx context.Context, table string, year int) ([]int64, error) {
	start, end := yearBounds(year)

	var rows []monthlyRow
	err := r.db.WithContext(ctx).Table(table).
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]int64, 12)
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			counts[row.Month-1] = row.Count
		}
	}
	return counts, nil
}

func (r *repository) MonthlyDonationTotals(ctx context.Context, year int) ([]int64, []float64, error) {
	start, end := yearBounds(year)

	var rows []monthlyRow
	err := r.db.WithContext(ctx).Table("donations").
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount").
		Where("created_at >= ? AND created_at < ? AND status = ?", start, end, "completed").
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	counts := make([]int64, 12)
	amounts := make([]float64, 12)
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			counts[row.Month-1] = row.Count
			amounts[row.Month-1] = row.Amount
		}
	}
	return counts, amounts, nil
}

// CategoryBreakdown unrolls the jsonb line items of completed
// donations and aggregates per category name.
func (r *repository) CategoryBreakdown(ctx context.Context) ([]CategoryBreakdown, error) {
	var rows []CategoryBreakdown
	err := r.db.WithContext(ctx).Raw(`
		SELECT item->>'category_name' AS category_name,
		       COUNT(*) AS count,
		       COALESCE(SUM((item->>'amount')::numeric), 0) AS amount
		FROM donations d, jsonb_array_elements(d.items) AS item
		WHERE d.status = ?
		GROUP BY category_name
		ORDER BY amount DESC
	`, "completed").Scan(&rows).Error
	return rows, err
}

// EarliestRecordYear returns the year of the oldest row across users,
// khandans and donations, or zero when all three stores are empty.
func (r *repository) EarliestRecordYear(ctx context.Context) (int, error) {
	var earliest *time.Time
	err := r.db.WithContext(ctx).Raw(`
		SELECT MIN(t.created_at) FROM (
			SELECT MIN(created_at) AS created_at FROM users
			UNION ALL
			SELECT MIN(created_at) FROM khandans
			UNION ALL
			SELECT MIN(created_at) FROM donations
		) t
	`).Scan(&earliest).Error
	if err != nil {
		return 0, err
	}
	if earliest == nil {
		return 0, nil
	}
	return earliest.Year(), nil
}
