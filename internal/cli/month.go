package cli

import (
	"context"
	"fmt"
	"time"
)

// Month shows or shifts the selected period.
//
//	month            - show the selected month and its bounds
//	month next       - advance one month
//	month prev       - go back one month
//	month 2024-03    - jump to a month
func (a *App) Month(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "next":
			a.period.Next()
		case "prev", "previous":
			a.period.Previous()
		default:
			d, err := time.Parse("2006-01", args[0])
			if err != nil {
				printlnFn("Usage: month [next|prev|YYYY-MM]")
				return err
			}
			a.period.SetDate(d)
		}
	}

	start, end := a.period.Bounds()
	printlnFn(fmt.Sprintf("%s  (%s .. %s)",
		a.period.Date().Format("2006-01"),
		start.Format("2006-01-02"),
		end.Format("2006-01-02")))
	return nil
}
