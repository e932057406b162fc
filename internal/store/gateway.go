// Package store defines the contract used against the remote record store:
// one narrow interface per collection (transactions, categories, profiles)
// plus the row types in the store's own field naming. The rest of the system
// only ever sees these interfaces; translation to the internal schema lives
// in translate.go.
package store

import (
	"context"
	"database/sql"
	"time"
)

// TransactionRow is a transaction record in storage naming. The category
// reference column is category_id (snake_case).
type TransactionRow struct {
	ID          string
	UserID      string
	Date        time.Time
	Amount      float64
	Type        string
	CategoryID  string
	Description string
}

// CategoryRow is a category record in storage naming. IsActive maps the
// is_active column and is nullable: rows created before the column existed
// carry NULL, which readers must treat as active.
type CategoryRow struct {
	ID        string
	UserID    string
	Name      string
	Type      string
	Color     string
	IsActive  sql.NullBool
	CreatedAt time.Time
}

// ProfileRow is the single per-user settings record; date_format is the
// storage name for the display pattern.
type ProfileRow struct {
	UserID     string
	Language   string
	Currency   string
	DateFormat string
	UpdatedAt  time.Time
}

// Transactions is the transaction collection contract.
type Transactions interface {
	// ListByUser returns all of the user's transactions ordered by date
	// descending.
	ListByUser(ctx context.Context, userID string) ([]TransactionRow, error)

	// Insert stores one row and returns it with server-assigned fields.
	Insert(ctx context.Context, row TransactionRow) (*TransactionRow, error)

	// Update pushes all mutable fields of the row matched by row.ID.
	Update(ctx context.Context, row TransactionRow) error

	Delete(ctx context.Context, id string) error
}

// Categories is the category collection contract.
type Categories interface {
	// ListByUser returns all of the user's categories ordered by creation
	// time ascending.
	ListByUser(ctx context.Context, userID string) ([]CategoryRow, error)

	CountByUser(ctx context.Context, userID string) (int, error)

	Insert(ctx context.Context, row CategoryRow) (*CategoryRow, error)

	// InsertMany bulk-inserts the rows and returns the stored rows with
	// server-assigned ids, in insertion order.
	InsertMany(ctx context.Context, rows []CategoryRow) ([]CategoryRow, error)

	Update(ctx context.Context, row CategoryRow) error

	Delete(ctx context.Context, id string) error
}

// Profiles is the profile collection contract.
type Profiles interface {
	// GetByUser returns the user's profile or common.ErrNotFound.
	GetByUser(ctx context.Context, userID string) (*ProfileRow, error)

	Insert(ctx context.Context, row ProfileRow) (*ProfileRow, error)

	// Upsert writes the row keyed by UserID, inserting or overwriting.
	Upsert(ctx context.Context, row ProfileRow) error
}

// Gateway bundles the three collection contracts.
type Gateway interface {
	Transactions() Transactions
	Categories() Categories
	Profiles() Profiles
}
