package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/models"
)

// Categories prints all categories, inactive ones marked.
func (a *App) Categories(ctx context.Context) error {
	categories := a.core.Categories()
	if len(categories) == 0 {
		printlnFn("No categories")
		return nil
	}

	for _, cat := range categories {
		marker := " "
		if !cat.IsActive {
			marker = "x"
		}
		printlnFn(fmt.Sprintf("%s [%s] %-8s %s", cat.ID, marker, string(cat.Type), cat.Name))
	}
	return nil
}

// AddCategory interactively collects a category and stores it.
func (a *App) AddCategory(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if strings.TrimSpace(name) == "" {
		printlnFn("Name is required")
		return fmt.Errorf("empty category name")
	}

	typeText, err := GetSimpleText(a.reader, "Type (income/expense)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	catType := models.TransactionType(strings.ToLower(strings.TrimSpace(typeText)))
	if !catType.Valid() {
		printlnFn("Unknown type:", typeText)
		return fmt.Errorf("unknown category type %q", typeText)
	}

	color, err := GetSimpleText(a.reader, "Color (hex, empty for default)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if color == "" {
		color = "#6b7280"
	}

	stored, err := a.core.AddCategory(ctx, models.Category{
		Name:     strings.TrimSpace(name),
		Type:     catType,
		Color:    color,
		IsActive: true,
	})
	if err != nil {
		if errors.Is(err, common.ErrCategoryExists) {
			printlnFn("A category with this name already exists")
		} else {
			printlnFn("Add failed:", err)
		}
		return err
	}

	printlnFn("Added", stored.Name, "("+stored.ID+")")
	return nil
}

// DeleteCategory removes the category named by its id argument. Categories
// still referenced by transactions are refused.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: delcat <id>")
		return fmt.Errorf("missing id")
	}

	if err := a.core.DeleteCategory(ctx, args[0]); err != nil {
		if errors.Is(err, common.ErrCategoryHasTransactions) {
			printlnFn("This category is used by transactions and cannot be deleted")
		} else {
			printlnFn("Delete failed:", err)
		}
		return err
	}
	printlnFn("Deleted")
	return nil
}
