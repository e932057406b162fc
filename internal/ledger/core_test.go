package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/logging"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/period"
	"github.com/meslee/moneyledger/internal/settings"
	"github.com/meslee/moneyledger/internal/store"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// mapRepo is an in-memory localcache.Repository double.
type mapRepo struct {
	values map[string]string
}

func newMapRepo() *mapRepo { return &mapRepo{values: map[string]string{}} }

func (m *mapRepo) Get(_ context.Context, key string) (string, error) { return m.values[key], nil }
func (m *mapRepo) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}
func (m *mapRepo) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}
func (m *mapRepo) Clear(_ context.Context) error {
	m.values = map[string]string{}
	return nil
}

// testGateway swaps individual collections over a memory gateway.
type testGateway struct {
	store.Gateway
	transactions store.Transactions
	categories   store.Categories
}

func (g *testGateway) Transactions() store.Transactions {
	if g.transactions != nil {
		return g.transactions
	}
	return g.Gateway.Transactions()
}

func (g *testGateway) Categories() store.Categories {
	if g.categories != nil {
		return g.categories
	}
	return g.Gateway.Categories()
}

func newTestCore(t *testing.T, gw store.Gateway) (*Core, *period.Selector) {
	t.Helper()
	sel := period.NewSelector()
	st := settings.NewStore(newMapRepo(), gw.Profiles(), func() *models.User { return nil }, discardLogger())
	c := NewCore(gw, st, sel, discardLogger())
	c.SetSeedJitter(0, 0)
	return c, sel
}

func testUser() *models.User {
	return &models.User{ID: "u1", Email: "me@example.com"}
}

func initReady(t *testing.T, c *Core) {
	t.Helper()
	require.NoError(t, c.Init(context.Background(), testUser()))
	require.Equal(t, StateReady, c.State())
}

func TestAddTransactionPrependsStoredRecord(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	cat := c.Categories()[0]
	older := models.Transaction{
		Date: time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		Amount: 100, Type: cat.Type, CategoryID: cat.ID, Description: "first",
	}
	require.NoError(t, c.AddTransaction(ctx, older))

	// an earlier date still lands at the front of the list
	earlier := older
	earlier.Date = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	earlier.Description = "second"
	require.NoError(t, c.AddTransaction(ctx, earlier))

	list := c.Transactions()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Description)
	assert.NotEmpty(t, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestAddTransactionRequiresAuth(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())

	err := c.AddTransaction(context.Background(), models.Transaction{Amount: 1, Type: models.TypeExpense})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

type failingTransactions struct {
	store.Transactions
	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func (f *failingTransactions) ListByUser(ctx context.Context, userID string) ([]store.TransactionRow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Transactions.ListByUser(ctx, userID)
}

func (f *failingTransactions) Insert(ctx context.Context, row store.TransactionRow) (*store.TransactionRow, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return f.Transactions.Insert(ctx, row)
}

func (f *failingTransactions) Update(ctx context.Context, row store.TransactionRow) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.Transactions.Update(ctx, row)
}

func (f *failingTransactions) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Transactions.Delete(ctx, id)
}

func TestAddTransactionFailureLeavesSnapshotUntouched(t *testing.T) {
	mem := store.NewMemoryGateway()
	gw := &testGateway{Gateway: mem, transactions: &failingTransactions{
		Transactions: mem.Transactions(),
		insertErr:    errors.New("network down"),
	}}
	c, _ := newTestCore(t, gw)
	initReady(t, c)

	err := c.AddTransaction(context.Background(), models.Transaction{
		Date: time.Now(), Amount: 10, Type: models.TypeExpense, CategoryID: c.Categories()[0].ID,
	})
	require.Error(t, err)
	assert.Empty(t, c.Transactions())
	assert.Equal(t, StateReady, c.State())
}

func TestUpdateTransactionReplacesByID(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	cat := c.Categories()[0]
	require.NoError(t, c.AddTransaction(ctx, models.Transaction{
		Date: time.Now(), Amount: 10, Type: cat.Type, CategoryID: cat.ID,
	}))

	updated := c.Transactions()[0]
	updated.Amount = 99
	require.NoError(t, c.UpdateTransaction(ctx, updated))

	list := c.Transactions()
	require.Len(t, list, 1)
	assert.Equal(t, 99.0, list[0].Amount)
}

func TestDeleteTransaction(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	cat := c.Categories()[0]
	require.NoError(t, c.AddTransaction(ctx, models.Transaction{
		Date: time.Now(), Amount: 10, Type: cat.Type, CategoryID: cat.ID,
	}))

	id := c.Transactions()[0].ID
	require.NoError(t, c.DeleteTransaction(ctx, id))
	assert.Empty(t, c.Transactions())
}

func TestAddCategoryRejectsDuplicateName(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	existing := c.Categories()[0]

	// same name, same type, case and whitespace insensitive
	_, err := c.AddCategory(ctx, models.Category{
		Name: "  " + existing.Name + " ", Type: existing.Type, IsActive: true,
	})
	assert.ErrorIs(t, err, common.ErrCategoryExists)

	// same name with the opposite type is a different category
	other := models.TypeIncome
	if existing.Type == models.TypeIncome {
		other = models.TypeExpense
	}
	_, err = c.AddCategory(ctx, models.Category{Name: existing.Name, Type: other, IsActive: true})
	assert.NoError(t, err)
}

func TestUpdateCategoryNameCollision(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	var expenses []models.Category
	for _, cat := range c.Categories() {
		if cat.Type == models.TypeExpense {
			expenses = append(expenses, cat)
		}
	}
	require.GreaterOrEqual(t, len(expenses), 2)

	victim := expenses[0]
	victim.Name = expenses[1].Name
	assert.ErrorIs(t, c.UpdateCategory(ctx, victim), common.ErrCategoryNameExists)

	// keeping its own name is not a collision
	victim = expenses[0]
	victim.Color = "#000000"
	assert.NoError(t, c.UpdateCategory(ctx, victim))
}

func TestDeleteCategoryGuard(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	cat := c.Categories()[0]
	require.NoError(t, c.AddTransaction(ctx, models.Transaction{
		Date: time.Now(), Amount: 10, Type: cat.Type, CategoryID: cat.ID,
	}))

	assert.ErrorIs(t, c.DeleteCategory(ctx, cat.ID), common.ErrCategoryHasTransactions)

	id := c.Transactions()[0].ID
	require.NoError(t, c.DeleteTransaction(ctx, id))
	assert.NoError(t, c.DeleteCategory(ctx, cat.ID))
}

func TestActiveCategoriesFiltering(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	deactivated := c.ActiveCategories(models.TypeExpense)[0]
	deactivated.IsActive = false
	require.NoError(t, c.UpdateCategory(ctx, deactivated))

	for _, cat := range c.ActiveCategories(models.TypeExpense) {
		assert.NotEqual(t, deactivated.ID, cat.ID)
	}
	// still visible in the full list for historical display
	_, ok := c.CategoryByID(deactivated.ID)
	assert.True(t, ok)
}

func TestMonthlyTransactionsBoundsInclusive(t *testing.T) {
	c, sel := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)
	ctx := context.Background()

	cat := c.Categories()[0]
	add := func(date time.Time, desc string) {
		t.Helper()
		require.NoError(t, c.AddTransaction(ctx, models.Transaction{
			Date: date, Amount: 10, Type: cat.Type, CategoryID: cat.ID, Description: desc,
		}))
	}

	add(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), "before")
	add(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "first instant")
	add(time.Date(2024, time.March, 31, 23, 59, 59, 999999999, time.UTC), "last instant")
	add(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "after")

	sel.SetDate(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	monthly := c.MonthlyTransactions()
	require.Len(t, monthly, 2)
	descriptions := []string{monthly[0].Description, monthly[1].Description}
	assert.Contains(t, descriptions, "first instant")
	assert.Contains(t, descriptions, "last instant")
}

func TestSubscribeFiresOnMutation(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)

	fired := 0
	c.Subscribe(func() { fired++ })

	cat := c.Categories()[0]
	require.NoError(t, c.AddTransaction(context.Background(), models.Transaction{
		Date: time.Now(), Amount: 10, Type: cat.Type, CategoryID: cat.ID,
	}))
	assert.Equal(t, 1, fired)
}

func TestCategoryByIDDangling(t *testing.T) {
	c, _ := newTestCore(t, store.NewMemoryGateway())
	initReady(t, c)

	_, ok := c.CategoryByID("no-such-category")
	assert.False(t, ok)
}
