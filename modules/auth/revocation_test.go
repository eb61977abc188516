package auth

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRevocationStore(t *testing.T) *GormRevocationStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&RevokedToken{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewGormRevocationStore(db)
}

func TestGormRevocationStore_RevokeAndCheck(t *testing.T) {
	store := setupRevocationStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-unknown")
	if err != nil {
		t.Fatalf("IsRevoked() error = %v", err)
	}
	if revoked {
		t.Error("IsRevoked() = true for a token that was never revoked")
	}

	expiresAt := time.Now().Add(time.Hour)
	if err := store.Revoke(ctx, "jti-1", "usr_test123456", expiresAt); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	revoked, err = store.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked() error = %v", err)
	}
	if !revoked {
		t.Error("IsRevoked() = false after Revoke()")
	}
}

func TestGormRevocationStore_RevokeIsIdempotent(t *testing.T) {
	store := setupRevocationStore(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(time.Hour)
	for i := 0; i < 3; i++ {
		if err := store.Revoke(ctx, "jti-dup", "usr_test123456", expiresAt); err != nil {
			t.Fatalf("Revoke() call %d error = %v", i+1, err)
		}
	}

	var count int64
	store.db.Model(&RevokedToken{}).Where("jti = ?", "jti-dup").Count(&count)
	if count != 1 {
		t.Errorf("revoked row count = %d, want 1", count)
	}
}

func TestGormRevocationStore_ExpiredEntryNotRevoked(t *testing.T) {
	store := setupRevocationStore(t)
	ctx := context.Background()

	// An entry past its expiry no longer matters: the token itself fails
	// signature validation.
	if err := store.Revoke(ctx, "jti-old", "usr_test123456", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "jti-old")
	if err != nil {
		t.Fatalf("IsRevoked() error = %v", err)
	}
	if revoked {
		t.Error("IsRevoked() = true for an entry past its expiry")
	}
}

func TestGormRevocationStore_Sweep(t *testing.T) {
	store := setupRevocationStore(t)
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-live", "usr_test123456", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if err := store.Revoke(ctx, "jti-dead", "usr_test123456", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	removed, err := store.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Sweep() removed = %d, want 1", removed)
	}

	revoked, err := store.IsRevoked(ctx, "jti-live")
	if err != nil {
		t.Fatalf("IsRevoked() error = %v", err)
	}
	if !revoked {
		t.Error("Sweep() removed a live entry")
	}
}
