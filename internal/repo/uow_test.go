package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
)

func TestInTx_HooksRunAfterCommitInOrder(t *testing.T) {
	db := newRepoDB(t, &domain.Tag{})
	ctx := context.Background()

	var order []int
	err := InTx(ctx, db, func(tx *gorm.DB, uow *UnitOfWork) error {
		uow.OnCommit(func() { order = append(order, 1) })
		uow.OnCommit(nil) // ignored
		uow.OnCommit(func() { order = append(order, 2) })
		if _, err := CreateTag(ctx, tx, "inside", ""); err != nil {
			return err
		}
		// Hooks must not have fired mid-transaction.
		if len(order) != 0 {
			t.Fatalf("hook fired before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("hook order: %v", order)
	}
}

func TestInTx_RollbackDiscardsHooksAndWrites(t *testing.T) {
	db := newRepoDB(t, &domain.Tag{})
	ctx := context.Background()

	boom := errors.New("boom")
	fired := false
	err := InTx(ctx, db, func(tx *gorm.DB, uow *UnitOfWork) error {
		uow.OnCommit(func() { fired = true })
		if _, err := CreateTag(ctx, tx, "doomed", ""); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if fired {
		t.Fatalf("hook ran after rollback")
	}
	var n int64
	if err := db.Model(&domain.Tag{}).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("rolled-back write survived: n=%d err=%v", n, err)
	}
}
