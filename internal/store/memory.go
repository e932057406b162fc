package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meslee/moneyledger/internal/common"
)

// MemoryGateway is an in-memory Gateway implementation. It backs tests and
// the demo mode; it mimics the remote store's observable behavior including
// server-assigned ids and created_at ordering.
type MemoryGateway struct {
	transactions *MemoryTransactions
	categories   *MemoryCategories
	profiles     *MemoryProfiles
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		transactions: &MemoryTransactions{rows: map[string]TransactionRow{}},
		categories:   &MemoryCategories{rows: map[string]CategoryRow{}},
		profiles:     &MemoryProfiles{rows: map[string]ProfileRow{}},
	}
}

func (g *MemoryGateway) Transactions() Transactions { return g.transactions }
func (g *MemoryGateway) Categories() Categories     { return g.categories }
func (g *MemoryGateway) Profiles() Profiles         { return g.profiles }

// MemoryTransactions implements Transactions in memory.
type MemoryTransactions struct {
	mu   sync.Mutex
	rows map[string]TransactionRow
}

func (m *MemoryTransactions) ListByUser(_ context.Context, userID string) ([]TransactionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []TransactionRow
	for _, r := range m.rows {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (m *MemoryTransactions) Insert(_ context.Context, row TransactionRow) (*TransactionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row.ID = uuid.NewString()
	m.rows[row.ID] = row
	return &row, nil
}

func (m *MemoryTransactions) Update(_ context.Context, row TransactionRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[row.ID]
	if !ok {
		return common.ErrNotFound
	}
	row.UserID = existing.UserID
	m.rows[row.ID] = row
	return nil
}

func (m *MemoryTransactions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// MemoryCategories implements Categories in memory.
type MemoryCategories struct {
	mu   sync.Mutex
	rows map[string]CategoryRow
	seq  int
}

func (m *MemoryCategories) ListByUser(_ context.Context, userID string) ([]CategoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked(userID), nil
}

func (m *MemoryCategories) listLocked(userID string) []CategoryRow {
	var result []CategoryRow
	for _, r := range m.rows {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

func (m *MemoryCategories) CountByUser(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listLocked(userID)), nil
}

func (m *MemoryCategories) Insert(_ context.Context, row CategoryRow) (*CategoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(row), nil
}

func (m *MemoryCategories) insertLocked(row CategoryRow) *CategoryRow {
	m.seq++
	row.ID = uuid.NewString()
	// Monotonic timestamps keep creation order stable even within one tick.
	row.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Microsecond)
	m.rows[row.ID] = row
	return &row
}

func (m *MemoryCategories) InsertMany(_ context.Context, rows []CategoryRow) ([]CategoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := make([]CategoryRow, 0, len(rows))
	for _, row := range rows {
		inserted = append(inserted, *m.insertLocked(row))
	}
	return inserted, nil
}

func (m *MemoryCategories) Update(_ context.Context, row CategoryRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[row.ID]
	if !ok {
		return common.ErrNotFound
	}
	existing.Name = row.Name
	existing.Color = row.Color
	existing.IsActive = row.IsActive
	m.rows[row.ID] = existing
	return nil
}

func (m *MemoryCategories) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// MemoryProfiles implements Profiles in memory.
type MemoryProfiles struct {
	mu   sync.Mutex
	rows map[string]ProfileRow
}

func (m *MemoryProfiles) GetByUser(_ context.Context, userID string) (*ProfileRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &r, nil
}

func (m *MemoryProfiles) Insert(_ context.Context, row ProfileRow) (*ProfileRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row.UpdatedAt = time.Now()
	m.rows[row.UserID] = row
	return &row, nil
}

func (m *MemoryProfiles) Upsert(_ context.Context, row ProfileRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows[row.UserID] = row
	return nil
}
