// Package stats derives trend statistics from the ledger snapshot: monthly
// expense buckets, month-over-month movement and the dashboard summary.
// Everything here is a pure function over the published collections;
// charting the results is out of scope.
package stats

import (
	"math"
	"time"

	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/period"
)

// MonthBucket aggregates one month's expenses per category.
type MonthBucket struct {
	// Month is the first instant of the bucket's month.
	Month time.Time
	// ByCategory sums expense amounts per category id. Dangling category
	// references keep their id; presentation renders them uncategorized.
	ByCategory map[string]float64
	Total      float64
}

// ExpenseTrend buckets expense transactions for the last months calendar
// months ending at ref's month, oldest first. Every month in the range gets
// a bucket even when empty.
func ExpenseTrend(transactions []models.Transaction, ref time.Time, months int) []MonthBucket {
	if months <= 0 {
		return nil
	}

	buckets := make([]MonthBucket, 0, months)
	index := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		m := period.StartOfMonth(period.AddMonths(ref, -i))
		index[m.Format("2006-01")] = len(buckets)
		buckets = append(buckets, MonthBucket{Month: m, ByCategory: map[string]float64{}})
	}

	start := buckets[0].Month
	end := period.EndOfMonth(buckets[len(buckets)-1].Month)

	for _, t := range transactions {
		if t.Type != models.TypeExpense {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		i, ok := index[t.Date.Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].ByCategory[t.CategoryID] += t.Amount
		buckets[i].Total += t.Amount
	}

	return buckets
}

// Comparison is the movement between the two most recent buckets.
type Comparison struct {
	Diff    float64
	Percent float64
	// TopMover is the category whose spending rose the most since last
	// month. When every category declined it is the least-declining one and
	// TopMoverAmount is negative. Nil only when no categories were given.
	TopMover       *models.Category
	TopMoverAmount float64
}

// MonthOverMonth compares the last two buckets of a trend. Returns nil when
// fewer than two buckets are available.
func MonthOverMonth(buckets []MonthBucket, categories []models.Category) *Comparison {
	if len(buckets) < 2 {
		return nil
	}

	this := buckets[len(buckets)-1]
	last := buckets[len(buckets)-2]

	diff := this.Total - last.Total
	var percent float64
	switch {
	case last.Total != 0:
		percent = diff / last.Total * 100
	case diff > 0:
		percent = 100
	}

	result := &Comparison{Diff: diff, Percent: percent}

	maxIncrease := math.Inf(-1)
	for i := range categories {
		cat := categories[i]
		increase := this.ByCategory[cat.ID] - last.ByCategory[cat.ID]
		if increase > maxIncrease {
			maxIncrease = increase
			mover := cat
			result.TopMover = &mover
			result.TopMoverAmount = increase
		}
	}

	return result
}

// Summary is the dashboard headline: overall balance plus the selected
// month's totals.
type Summary struct {
	Balance         float64
	MonthlyIncome   float64
	MonthlyExpenses float64
	// SavingsRate is (income-expenses)/income in percent, 0 when the month
	// had no income.
	SavingsRate float64
}

// Summarize computes the summary from the full transaction list and the
// monthly view.
func Summarize(all, monthly []models.Transaction) Summary {
	var s Summary
	for _, t := range all {
		switch t.Type {
		case models.TypeIncome:
			s.Balance += t.Amount
		case models.TypeExpense:
			s.Balance -= t.Amount
		}
	}
	for _, t := range monthly {
		switch t.Type {
		case models.TypeIncome:
			s.MonthlyIncome += t.Amount
		case models.TypeExpense:
			s.MonthlyExpenses += t.Amount
		}
	}
	if s.MonthlyIncome > 0 {
		s.SavingsRate = (s.MonthlyIncome - s.MonthlyExpenses) / s.MonthlyIncome * 100
	}
	return s
}
