package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meslee/moneyledger/internal/common"
)

func TestMemoryTransactionsOrdering(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	older := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	_, err := g.Transactions().Insert(ctx, TransactionRow{UserID: "u1", Date: older, Amount: 10, Type: "expense"})
	require.NoError(t, err)
	_, err = g.Transactions().Insert(ctx, TransactionRow{UserID: "u1", Date: newer, Amount: 20, Type: "expense"})
	require.NoError(t, err)
	_, err = g.Transactions().Insert(ctx, TransactionRow{UserID: "other", Date: newer, Amount: 99, Type: "income"})
	require.NoError(t, err)

	rows, err := g.Transactions().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer, rows[0].Date)
	assert.Equal(t, older, rows[1].Date)
}

func TestMemoryTransactionsAssignsIDs(t *testing.T) {
	g := NewMemoryGateway()

	inserted, err := g.Transactions().Insert(context.Background(), TransactionRow{ID: "client-id", UserID: "u1"})
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", inserted.ID)
	assert.NotEmpty(t, inserted.ID)
}

func TestMemoryTransactionsUpdateDelete(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	inserted, err := g.Transactions().Insert(ctx, TransactionRow{UserID: "u1", Amount: 10})
	require.NoError(t, err)

	inserted.Amount = 25
	require.NoError(t, g.Transactions().Update(ctx, *inserted))

	rows, err := g.Transactions().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 25.0, rows[0].Amount)

	require.NoError(t, g.Transactions().Delete(ctx, inserted.ID))
	assert.ErrorIs(t, g.Transactions().Delete(ctx, inserted.ID), common.ErrNotFound)
	assert.ErrorIs(t, g.Transactions().Update(ctx, *inserted), common.ErrNotFound)
}

func TestMemoryCategoriesCreationOrder(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		_, err := g.Categories().Insert(ctx, CategoryRow{UserID: "u1", Name: n, Type: "expense"})
		require.NoError(t, err)
	}

	rows, err := g.Categories().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, n := range names {
		assert.Equal(t, n, rows[i].Name)
	}

	count, err := g.Categories().CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMemoryCategoriesInsertMany(t *testing.T) {
	g := NewMemoryGateway()

	inserted, err := g.Categories().InsertMany(context.Background(), []CategoryRow{
		{UserID: "u1", Name: "A", Type: "income"},
		{UserID: "u1", Name: "B", Type: "expense"},
	})
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.NotEmpty(t, inserted[0].ID)
	assert.NotEqual(t, inserted[0].ID, inserted[1].ID)
	assert.Equal(t, "A", inserted[0].Name)
}

func TestMemoryProfiles(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	_, err := g.Profiles().GetByUser(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = g.Profiles().Insert(ctx, ProfileRow{UserID: "u1", Language: "ko", Currency: "KRW", DateFormat: "yyyy-MM-dd"})
	require.NoError(t, err)

	p, err := g.Profiles().GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ko", p.Language)

	require.NoError(t, g.Profiles().Upsert(ctx, ProfileRow{UserID: "u1", Language: "en", Currency: "USD", DateFormat: "MM/dd/yyyy"}))
	p, err = g.Profiles().GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "en", p.Language)
}

func TestMemoryCategoriesUpdatePreservesOwner(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	inserted, err := g.Categories().Insert(ctx, CategoryRow{UserID: "u1", Name: "Food", Type: "expense", IsActive: sql.NullBool{Bool: true, Valid: true}})
	require.NoError(t, err)

	err = g.Categories().Update(ctx, CategoryRow{ID: inserted.ID, Name: "Groceries", IsActive: sql.NullBool{Bool: false, Valid: true}})
	require.NoError(t, err)

	rows, err := g.Categories().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Groceries", rows[0].Name)
	assert.False(t, rows[0].IsActive.Bool)

	assert.True(t, errors.Is(g.Categories().Update(ctx, CategoryRow{ID: "ghost"}), common.ErrNotFound))
}
