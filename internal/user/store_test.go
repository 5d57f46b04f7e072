package user

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/callboard/callboard-backend/internal/shared"
)

func setupTestUserDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func newMigratedStore(t *testing.T) *Store {
	store := NewStore(setupTestUserDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store
}

func TestStore_Migrate(t *testing.T) {
	db := setupTestUserDB(t)
	store := NewStore(db)

	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)
	found := false
	for _, table := range tables {
		if table == "users" {
			found = true
			break
		}
	}
	if !found {
		t.Error("users table should exist after migration")
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := newMigratedStore(t)
	ctx := context.Background()

	u := &User{Name: "Jane", Email: "jane@example.com", Password: "hash", Role: shared.RoleCustomer}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected an id to be assigned")
	}

	byID, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Email != "jane@example.com" {
		t.Errorf("unexpected email: %q", byID.Email)
	}

	byEmail, err := store.GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("expected id %d, got %d", u.ID, byEmail.ID)
	}
}

func TestStore_DuplicateEmail(t *testing.T) {
	store := newMigratedStore(t)
	ctx := context.Background()

	first := &User{Name: "A", Email: "dup@example.com", Password: "x", Role: shared.RoleCustomer}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second := &User{Name: "B", Email: "dup@example.com", Password: "x", Role: shared.RoleCustomer}
	if err := store.Create(ctx, second); err == nil {
		t.Error("expected unique constraint violation")
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := newMigratedStore(t)
	ctx := context.Background()

	if _, err := store.GetByID(ctx, 404); err != shared.ErrNotFound {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByEmail(ctx, "ghost@example.com"); err != shared.ErrNotFound {
		t.Errorf("GetByEmail: expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	store := newMigratedStore(t)
	ctx := context.Background()

	u := &User{Name: "Before", Email: "u@example.com", Password: "x", Role: shared.RoleCustomer}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, u.ID, map[string]any{"name": "After", "role": "admin"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("expected name After, got %q", updated.Name)
	}
	if updated.Role != shared.RoleAdmin {
		t.Errorf("expected role admin, got %q", updated.Role)
	}

	if _, err := store.Update(ctx, 404, map[string]any{"name": "x"}); err != shared.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newMigratedStore(t)
	ctx := context.Background()

	u := &User{Name: "Gone", Email: "gone@example.com", Password: "x", Role: shared.RoleCustomer}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, u.ID); err != shared.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, u.ID); err != shared.ErrNotFound {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestUser_IsAdmin(t *testing.T) {
	if (&User{Role: shared.RoleCustomer}).IsAdmin() {
		t.Error("customer should not be admin")
	}
	if !(&User{Role: shared.RoleAdmin}).IsAdmin() {
		t.Error("admin should be admin")
	}
}
