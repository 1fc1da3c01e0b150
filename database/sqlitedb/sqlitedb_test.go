package sqlitedb

import (
	"errors"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/models"
)

func newTestDB(t *testing.T) database.Database {
	db, err := NewMemoryDB()
	if err != nil {
		t.Fatal(err)
	}
	err = db.Update(func(tx database.Tx) error {
		return tx.Migrate(&models.Balance{})
	})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestDB_Update(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	err := db.Update(func(tx database.Tx) error {
		return tx.Save(&models.Balance{Identity: "abc", Amount: 500})
	})
	if err != nil {
		t.Error(err)
	}

	var balances []models.Balance
	err = db.View(func(tx database.Tx) error {
		return tx.Read().Find(&balances).Error
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(balances) != 1 {
		t.Errorf("Expected 1 balance, got %d", len(balances))
	}
}

func TestDB_UpdateRollback(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	err := db.Update(func(tx database.Tx) error {
		if err := tx.Save(&models.Balance{Identity: "abc", Amount: 500}); err != nil {
			t.Fatal(err)
		}
		return errors.New("atomic update failure")
	})
	if err == nil {
		t.Error("Update function did not return error")
	}

	var balances []models.Balance
	err = db.View(func(tx database.Tx) error {
		return tx.Read().Find(&balances).Error
	})
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		t.Fatal(err)
	}
	if len(balances) != 0 {
		t.Error("Db update failed to roll back.")
	}
}

func TestDB_ReadOnlyView(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	err := db.View(func(tx database.Tx) error {
		return tx.Save(&models.Balance{Identity: "abc", Amount: 500})
	})
	if err != ErrReadOnly {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestDB_CommitHooks(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	var fired bool
	err := db.Update(func(tx database.Tx) error {
		tx.RegisterCommitHook(func() { fired = true })
		return tx.Save(&models.Balance{Identity: "abc", Amount: 500})
	})
	if err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Error("Commit hook did not fire on commit")
	}

	fired = false
	err = db.Update(func(tx database.Tx) error {
		tx.RegisterCommitHook(func() { fired = true })
		return errors.New("rollback")
	})
	if err == nil {
		t.Fatal("Update function did not return error")
	}
	if fired {
		t.Error("Commit hook fired for a rolled back transaction")
	}
}
