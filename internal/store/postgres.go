package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/store/migrations"
)

// PostgresGateway implements Gateway against the Postgres database backing
// the remote store. It is the driver for the external collaborator, not a
// storage layer of its own: all invariants are enforced above it.
type PostgresGateway struct {
	db           *sql.DB
	transactions *PostgresTransactions
	categories   *PostgresCategories
	profiles     *PostgresProfiles
}

func (g *PostgresGateway) Conn() *sql.DB                  { return g.db }
func (g *PostgresGateway) Transactions() Transactions     { return g.transactions }
func (g *PostgresGateway) Categories() Categories         { return g.categories }
func (g *PostgresGateway) Profiles() Profiles             { return g.profiles }
func (g *PostgresGateway) Close() error                   { return g.db.Close() }
func (g *PostgresGateway) Ping(ctx context.Context) error { return g.db.PingContext(ctx) }

func (g *PostgresGateway) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.UpContext(ctx, g.db, ".")
}

func NewPostgresGateway(dsn string) (*PostgresGateway, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresGateway{
		db:           db,
		transactions: NewPostgresTransactions(db),
		categories:   NewPostgresCategories(db),
		profiles:     NewPostgresProfiles(db),
	}, nil
}

// PostgresTransactions implements Transactions.
type PostgresTransactions struct {
	db *sql.DB
}

func NewPostgresTransactions(db *sql.DB) *PostgresTransactions {
	return &PostgresTransactions{db: db}
}

func (r *PostgresTransactions) ListByUser(ctx context.Context, userID string) ([]TransactionRow, error) {
	query := `
		SELECT id, user_id, date, amount, type, category_id, description
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("selecting transactions: %w", err)
	}
	defer rows.Close()

	var result []TransactionRow
	for rows.Next() {
		var t TransactionRow
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Amount, &t.Type, &t.CategoryID, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresTransactions) Insert(ctx context.Context, row TransactionRow) (*TransactionRow, error) {
	query := `
		INSERT INTO transactions (user_id, date, amount, type, category_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		row.UserID, row.Date, row.Amount, row.Type, row.CategoryID, row.Description).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("inserting transaction: %w", err)
	}
	return &row, nil
}

func (r *PostgresTransactions) Update(ctx context.Context, row TransactionRow) error {
	query := `
		UPDATE transactions
		SET amount = $1, type = $2, category_id = $3, description = $4, date = $5
		WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query,
		row.Amount, row.Type, row.CategoryID, row.Description, row.Date, row.ID)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresTransactions) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return requireOneRow(res)
}

// PostgresCategories implements Categories.
type PostgresCategories struct {
	db *sql.DB
}

func NewPostgresCategories(db *sql.DB) *PostgresCategories {
	return &PostgresCategories{db: db}
}

func (r *PostgresCategories) ListByUser(ctx context.Context, userID string) ([]CategoryRow, error) {
	query := `
		SELECT id, user_id, name, type, color, is_active, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}
	defer rows.Close()

	var result []CategoryRow
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresCategories) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM categories WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return count, nil
}

func (r *PostgresCategories) Insert(ctx context.Context, row CategoryRow) (*CategoryRow, error) {
	query := `
		INSERT INTO categories (user_id, name, type, color, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		row.UserID, row.Name, row.Type, row.Color, row.IsActive).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return &row, nil
}

func (r *PostgresCategories) InsertMany(ctx context.Context, rows []CategoryRow) ([]CategoryRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	// Single multi-row INSERT so the seed set commits atomically.
	var sb strings.Builder
	sb.WriteString(`INSERT INTO categories (user_id, name, type, color, is_active) VALUES `)
	args := make([]any, 0, len(rows)*5)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, row.UserID, row.Name, row.Type, row.Color, row.IsActive)
	}
	sb.WriteString(` RETURNING id, user_id, name, type, color, is_active, created_at`)

	res, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("bulk inserting categories: %w", err)
	}
	defer res.Close()

	var inserted []CategoryRow
	for res.Next() {
		var c CategoryRow
		if err := res.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning inserted category: %w", err)
		}
		inserted = append(inserted, c)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *PostgresCategories) Update(ctx context.Context, row CategoryRow) error {
	query := `UPDATE categories SET name = $1, color = $2, is_active = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, row.Name, row.Color, row.IsActive, row.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresCategories) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return requireOneRow(res)
}

// PostgresProfiles implements Profiles.
type PostgresProfiles struct {
	db *sql.DB
}

func NewPostgresProfiles(db *sql.DB) *PostgresProfiles {
	return &PostgresProfiles{db: db}
}

func (r *PostgresProfiles) GetByUser(ctx context.Context, userID string) (*ProfileRow, error) {
	query := `
		SELECT user_id, language, currency, date_format, updated_at
		FROM profiles
		WHERE user_id = $1`

	var p ProfileRow
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Language, &p.Currency, &p.DateFormat, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting profile: %w", err)
	}
	return &p, nil
}

func (r *PostgresProfiles) Insert(ctx context.Context, row ProfileRow) (*ProfileRow, error) {
	query := `
		INSERT INTO profiles (user_id, language, currency, date_format)
		VALUES ($1, $2, $3, $4)
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		row.UserID, row.Language, row.Currency, row.DateFormat).Scan(&row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	return &row, nil
}

func (r *PostgresProfiles) Upsert(ctx context.Context, row ProfileRow) error {
	query := `
		INSERT INTO profiles (user_id, language, currency, date_format, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			language = excluded.language,
			currency = excluded.currency,
			date_format = excluded.date_format,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		row.UserID, row.Language, row.Currency, row.DateFormat, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

func requireOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
