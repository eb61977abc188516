package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RevocationStore records revoked token identifiers (jti) until their natural
// expiry. Implementations must be safe for concurrent use. Revoking a token
// that is already revoked is not an error.
type RevocationStore interface {
	Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RevokedToken is a denylisted token identifier persisted until expiry.
type RevokedToken struct {
	JTI       string `gorm:"primaryKey;type:text"`
	UserID    string `gorm:"not null;type:text"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the table name for the RevokedToken entity.
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

// GormRevocationStore persists revoked tokens in the auth database.
type GormRevocationStore struct {
	db *gorm.DB
}

// NewGormRevocationStore creates a database-backed revocation store.
func NewGormRevocationStore(db *gorm.DB) *GormRevocationStore {
	return &GormRevocationStore{db: db}
}

// Revoke denylists the token identifier until expiresAt.
func (s *GormRevocationStore) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	record := RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	// FirstOrCreate keeps revocation idempotent under the primary key.
	result := s.db.WithContext(ctx).Where("jti = ?", jti).FirstOrCreate(&record)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke token: %w", result.Error)
	}
	return nil
}

// IsRevoked reports whether the token identifier is denylisted.
func (s *GormRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, time.Now()).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check revocation: %w", result.Error)
	}
	return count > 0, nil
}

// Sweep removes entries whose tokens have expired on their own. Expired
// tokens fail signature validation anyway, so keeping the rows is pointless.
func (s *GormRevocationStore) Sweep(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&RevokedToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep revoked tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// RedisRevocationStore keeps the denylist in Redis. Entries expire with the
// token's remaining lifetime, so no sweep is needed.
type RedisRevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocationStore creates a Redis-backed revocation store.
func NewRedisRevocationStore(client *redis.Client, prefix string) *RedisRevocationStore {
	if prefix == "" {
		prefix = "revoked:"
	}
	return &RedisRevocationStore{client: client, prefix: prefix}
}

// Revoke denylists the token identifier with a TTL equal to its remaining lifetime.
func (s *RedisRevocationStore) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to denylist.
		return nil
	}
	if err := s.client.Set(ctx, s.prefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token identifier is denylisted.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}
