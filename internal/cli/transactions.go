package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/meslee/moneyledger/internal/models"
)

// List prints the selected month's transactions, newest first.
func (a *App) List(ctx context.Context) error {
	if notice := a.core.Notice(); notice != "" {
		printlnFn("Notice:", notice)
	}

	transactions := a.core.MonthlyTransactions()
	if len(transactions) == 0 {
		printlnFn("No transactions in", a.period.Date().Format("2006-01"))
		return nil
	}

	for _, t := range transactions {
		name := "Uncategorized"
		if cat, ok := a.core.CategoryByID(t.CategoryID); ok {
			name = cat.Name
		}
		amount := a.settings.FormatMoney(t.Amount)
		if t.Type == models.TypeExpense {
			amount = "-" + amount
		}
		printlnFn(fmt.Sprintf("%s  %s  %-20s %12s  %s",
			t.ID, a.settings.FormatDate(t.Date), name, amount, t.Description))
	}
	return nil
}

// parseAmount parses a transaction amount. Amounts are non-negative; zero
// is allowed.
func parseAmount(text string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || amount < 0 {
		return 0, fmt.Errorf("invalid amount %q", text)
	}
	return amount, nil
}

// Add interactively collects a transaction and stores it.
func (a *App) Add(ctx context.Context) error {
	typeText, err := GetSimpleText(a.reader, "Type (income/expense)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	txType := models.TransactionType(strings.ToLower(strings.TrimSpace(typeText)))
	if !txType.Valid() {
		printlnFn("Unknown type:", typeText)
		return fmt.Errorf("unknown transaction type %q", typeText)
	}

	amountText, err := GetSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		printlnFn("Invalid amount:", amountText)
		return err
	}

	choices := a.core.ActiveCategories(txType)
	if len(choices) == 0 {
		printlnFn("No active categories for", string(txType))
		return fmt.Errorf("no active categories")
	}
	for i, cat := range choices {
		printlnFn(fmt.Sprintf("%2d. %s", i+1, cat.Name))
	}
	catText, err := GetSimpleText(a.reader, "Category number", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(catText))
	if err != nil || idx < 1 || idx > len(choices) {
		printlnFn("Invalid category number:", catText)
		return fmt.Errorf("invalid category number %q", catText)
	}

	dateText, err := GetSimpleText(a.reader, "Date (YYYY-MM-DD, empty for today)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	date := time.Now()
	if dateText != "" {
		date, err = time.Parse("2006-01-02", dateText)
		if err != nil {
			printlnFn("Invalid date:", dateText)
			return err
		}
	}

	description, err := GetSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	err = a.core.AddTransaction(ctx, models.Transaction{
		Date:        date,
		Amount:      amount,
		Type:        txType,
		CategoryID:  choices[idx-1].ID,
		Description: description,
	})
	if err != nil {
		printlnFn("Add failed:", err)
		return err
	}

	printlnFn("Added")
	return nil
}

// Delete removes the transaction named by its id argument.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: del <id>")
		return fmt.Errorf("missing id")
	}

	if err := a.core.DeleteTransaction(ctx, args[0]); err != nil {
		printlnFn("Delete failed:", err)
		return err
	}
	printlnFn("Deleted")
	return nil
}
