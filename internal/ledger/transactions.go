package ledger

import (
	"context"

	"github.com/meslee/moneyledger/internal/common"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/store"
)

// Transaction mutations are remote-first: the remote call is awaited and the
// snapshot is only updated from what the store confirmed, so a reader never
// observes a transaction that was not persisted. Failures leave the snapshot
// untouched; the error is returned so a stricter caller can surface it, but
// the core itself only logs it (the historical contract is catch-log-continue).

// AddTransaction inserts one transaction for the authenticated user and
// prepends the stored record to the snapshot. New entries land at the front
// regardless of date; keeping descending-date order is the caller's concern.
func (c *Core) AddTransaction(ctx context.Context, input models.Transaction) error {
	user := c.User()
	if user == nil {
		return common.ErrUnauthorized
	}

	row := store.TransactionToRow(input, user.ID)
	row.ID = ""

	inserted, err := c.gateway.Transactions().Insert(ctx, row)
	if err != nil {
		c.logger.Error(ctx, "add transaction failed", "error", err)
		return err
	}

	stored := store.TransactionFromRow(*inserted)

	c.mu.Lock()
	c.txOrder = append([]string{stored.ID}, c.txOrder...)
	c.txByID[stored.ID] = stored
	c.mu.Unlock()

	c.notify()
	return nil
}

// UpdateTransaction pushes all mutable fields to the remote record matched
// by id, then replaces the matching snapshot entry.
func (c *Core) UpdateTransaction(ctx context.Context, updated models.Transaction) error {
	user := c.User()
	if user == nil {
		return common.ErrUnauthorized
	}

	if err := c.gateway.Transactions().Update(ctx, store.TransactionToRow(updated, user.ID)); err != nil {
		c.logger.Error(ctx, "update transaction failed", "id", updated.ID, "error", err)
		return err
	}

	c.mu.Lock()
	if _, ok := c.txByID[updated.ID]; ok {
		c.txByID[updated.ID] = updated
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// DeleteTransaction removes the record remotely, then from the snapshot.
func (c *Core) DeleteTransaction(ctx context.Context, id string) error {
	if err := c.gateway.Transactions().Delete(ctx, id); err != nil {
		c.logger.Error(ctx, "delete transaction failed", "id", id, "error", err)
		return err
	}

	c.mu.Lock()
	if _, ok := c.txByID[id]; ok {
		delete(c.txByID, id)
		for i, tid := range c.txOrder {
			if tid == id {
				c.txOrder = append(c.txOrder[:i], c.txOrder[i+1:]...)
				break
			}
		}
	}
	c.mu.Unlock()

	c.notify()
	return nil
}
