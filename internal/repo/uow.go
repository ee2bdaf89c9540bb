// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the unit-of-work helper with
// post-commit hook support.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork collects callbacks to run strictly after the enclosing
// transaction has committed. If the transaction rolls back, registered
// hooks are discarded without running.
//
// The zero value is ready to use. A UnitOfWork must not be shared across
// transactions.
type UnitOfWork struct {
	hooks []func()
}

// OnCommit registers fn to run after a successful commit. Hooks run in
// registration order, on the caller's goroutine, after the transaction has
// durably committed. A hook that must not block the caller should spawn its
// own goroutine.
func (u *UnitOfWork) OnCommit(fn func()) {
	if fn == nil {
		return
	}
	u.hooks = append(u.hooks, fn)
}

// runHooks fires the registered hooks once. Called only after commit.
func (u *UnitOfWork) runHooks() {
	for _, h := range u.hooks {
		h()
	}
	u.hooks = nil
}

// InTx runs fn inside a database transaction and exposes a UnitOfWork for
// deferred side effects. All writes performed through the tx handle commit
// or roll back together; commit hooks fire only on the success path.
//
// This is the atomicity boundary for the vote engine: vote row, counter
// mutation, and reputation deltas all go through one InTx call, and the
// notification push is an OnCommit hook.
func InTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB, uow *UnitOfWork) error) error {
	var uow UnitOfWork
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, &uow)
	})
	if err != nil {
		return err
	}
	uow.runHooks()
	return nil
}
