package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/store"
)

// Category mutations validate against the in-memory snapshot before any
// remote call: (name, type) uniqueness and the has-transactions delete guard
// are application-level invariants because the remote store has no
// cross-collection constraints.

// AddCategory inserts a category after checking (name, type) uniqueness.
// Returns the stored category with its server-assigned id.
func (c *Core) AddCategory(ctx context.Context, input models.Category) (models.Category, error) {
	user := c.User()
	if user == nil {
		return models.Category{}, common.ErrUnauthorized
	}

	if c.nameTaken(input.Name, input.Type, "") {
		return models.Category{}, common.ErrCategoryExists
	}

	row := store.CategoryToRow(input, user.ID)
	row.ID = ""

	inserted, err := c.gateway.Categories().Insert(ctx, row)
	if err != nil {
		c.logger.Error(ctx, "add category failed", "name", input.Name, "error", err)
		return models.Category{}, fmt.Errorf("%w: %v", common.ErrCategoryAddFailed, err)
	}

	stored := store.CategoryFromRow(*inserted)

	c.mu.Lock()
	c.catOrder = append(c.catOrder, stored.ID)
	c.catByID[stored.ID] = stored
	c.mu.Unlock()

	c.notify()
	return stored, nil
}

// UpdateCategory pushes name, color and activity to the remote record after
// checking that the new name does not collide with another category of the
// same type.
func (c *Core) UpdateCategory(ctx context.Context, updated models.Category) error {
	user := c.User()
	if user == nil {
		return common.ErrUnauthorized
	}

	if c.nameTaken(updated.Name, updated.Type, updated.ID) {
		return common.ErrCategoryNameExists
	}

	if err := c.gateway.Categories().Update(ctx, store.CategoryToRow(updated, user.ID)); err != nil {
		c.logger.Error(ctx, "update category failed", "id", updated.ID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrCategoryUpdateFailed, err)
	}

	c.mu.Lock()
	if _, ok := c.catByID[updated.ID]; ok {
		c.catByID[updated.ID] = updated
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// DeleteCategory removes a category unless any transaction still references
// it.
func (c *Core) DeleteCategory(ctx context.Context, id string) error {
	c.mu.RLock()
	referenced := false
	for _, t := range c.txByID {
		if t.CategoryID == id {
			referenced = true
			break
		}
	}
	c.mu.RUnlock()

	if referenced {
		return common.ErrCategoryHasTransactions
	}

	if err := c.gateway.Categories().Delete(ctx, id); err != nil {
		c.logger.Error(ctx, "delete category failed", "id", id, "error", err)
		return fmt.Errorf("%w: %v", common.ErrCategoryDeleteFailed, err)
	}

	c.mu.Lock()
	if _, ok := c.catByID[id]; ok {
		delete(c.catByID, id)
		for i, cid := range c.catOrder {
			if cid == id {
				c.catOrder = append(c.catOrder[:i], c.catOrder[i+1:]...)
				break
			}
		}
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// nameTaken reports whether another category (excluding excludeID) already
// uses the (name, type) pair. Comparison is case-insensitive on the trimmed
// name.
func (c *Core) nameTaken(name string, t models.TransactionType, excludeID string) bool {
	name = strings.TrimSpace(name)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.catByID {
		if cat.ID == excludeID {
			continue
		}
		if cat.Type == t && strings.EqualFold(strings.TrimSpace(cat.Name), name) {
			return true
		}
	}
	return false
}
