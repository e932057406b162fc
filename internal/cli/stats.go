package cli

import (
	"context"
	"fmt"

	"github.com/meslee/moneyledger/internal/stats"
)

const trendMonths = 6

// Stats prints the dashboard summary, the expense trend over the last six
// months and the month-over-month movement.
func (a *App) Stats(ctx context.Context) error {
	all := a.core.Transactions()
	summary := stats.Summarize(all, a.core.MonthlyTransactions())

	printlnFn("Balance:         ", a.settings.FormatMoney(summary.Balance))
	printlnFn("Monthly income:  ", a.settings.FormatMoney(summary.MonthlyIncome))
	printlnFn("Monthly expenses:", a.settings.FormatMoney(summary.MonthlyExpenses))
	printlnFn(fmt.Sprintf("Savings rate:     %.1f%%", summary.SavingsRate))

	buckets := stats.ExpenseTrend(all, a.period.Date(), trendMonths)
	for _, b := range buckets {
		printlnFn(fmt.Sprintf("%s  %s", b.Month.Format("2006-01"), a.settings.FormatMoney(b.Total)))
	}

	if cmp := stats.MonthOverMonth(buckets, a.core.Categories()); cmp != nil {
		printlnFn(fmt.Sprintf("Change vs last month: %s (%.1f%%)",
			a.settings.FormatMoney(cmp.Diff), cmp.Percent))
		if cmp.TopMover != nil {
			printlnFn("Top mover:", cmp.TopMover.Name,
				a.settings.FormatMoney(cmp.TopMoverAmount))
		}
	}
	return nil
}
