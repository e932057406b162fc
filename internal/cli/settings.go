package cli

import (
	"context"
	"fmt"

	"github.com/meslee/moneyledger/internal/models"
)

// Settings shows or updates the user preferences.
//
//	settings                      - show current values
//	settings lang <en|ko>         - set the language
//	settings currency <KRW|USD|AUD> - set the currency
//	settings date <pattern>       - set the date display pattern
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		current := a.settings.Current()
		printlnFn("Language:   ", string(current.Language))
		printlnFn("Currency:   ", string(current.Currency))
		printlnFn("Date format:", string(current.DateFormat))
		return nil
	}

	if len(args) < 2 {
		printlnFn("Usage: settings [lang|currency|date] <value>")
		return fmt.Errorf("missing value")
	}

	var err error
	switch args[0] {
	case "lang", "language":
		err = a.settings.SetLanguage(ctx, models.Language(args[1]))
	case "currency":
		err = a.settings.SetCurrency(ctx, models.Currency(args[1]))
	case "date":
		err = a.settings.SetDateFormat(ctx, models.DateFormat(args[1]))
	default:
		printlnFn("Unknown setting:", args[0])
		return fmt.Errorf("unknown setting %q", args[0])
	}

	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Saved")
	return nil
}
