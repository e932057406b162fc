package store

import (
	"database/sql"

	"github.com/meslee/moneyledger/internal/models"
)

// TransactionFromRow translates storage naming to the internal schema
// (category_id → CategoryID).
func TransactionFromRow(r TransactionRow) models.Transaction {
	return models.Transaction{
		ID:          r.ID,
		Date:        r.Date,
		Amount:      r.Amount,
		Type:        models.TransactionType(r.Type),
		CategoryID:  r.CategoryID,
		Description: r.Description,
	}
}

// TransactionToRow translates a transaction to storage naming, attaching the
// owning user.
func TransactionToRow(t models.Transaction, userID string) TransactionRow {
	return TransactionRow{
		ID:          t.ID,
		UserID:      userID,
		Date:        t.Date,
		Amount:      t.Amount,
		Type:        string(t.Type),
		CategoryID:  t.CategoryID,
		Description: t.Description,
	}
}

// CategoryFromRow translates storage naming to the internal schema. A NULL
// is_active (rows predating the column) is treated as active.
func CategoryFromRow(r CategoryRow) models.Category {
	active := true
	if r.IsActive.Valid {
		active = r.IsActive.Bool
	}
	return models.Category{
		ID:       r.ID,
		Name:     r.Name,
		Type:     models.TransactionType(r.Type),
		Color:    r.Color,
		IsActive: active,
	}
}

func CategoryToRow(c models.Category, userID string) CategoryRow {
	return CategoryRow{
		ID:       c.ID,
		UserID:   userID,
		Name:     c.Name,
		Type:     string(c.Type),
		Color:    c.Color,
		IsActive: sql.NullBool{Bool: c.IsActive, Valid: true},
	}
}

// ProfileFromRow translates the profile record (date_format → DateFormat).
func ProfileFromRow(r ProfileRow) models.Profile {
	return models.Profile{
		UserID:     r.UserID,
		Language:   models.Language(r.Language),
		Currency:   models.Currency(r.Currency),
		DateFormat: models.DateFormat(r.DateFormat),
		UpdatedAt:  r.UpdatedAt,
	}
}

func ProfileToRow(p models.Profile) ProfileRow {
	return ProfileRow{
		UserID:     p.UserID,
		Language:   string(p.Language),
		Currency:   string(p.Currency),
		DateFormat: string(p.DateFormat),
		UpdatedAt:  p.UpdatedAt,
	}
}
