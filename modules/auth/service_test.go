package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "github.com/example/task-api/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestService builds an AuthService on an in-memory SQLite database.
func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &RevokedToken{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	jwtManager := NewJWTManager(JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	})

	return NewAuthService(
		NewUserRepository(db),
		NewPasswordHasher(),
		jwtManager,
		NewGormRevocationStore(db),
	)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if !strings.HasPrefix(user.ID, "usr_") {
		t.Errorf("user.ID = %q, want usr_ prefix", user.ID)
	}
	if user.PasswordHash == "password123" {
		t.Error("Register() stored the plaintext password")
	}

	tokens, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() after Register() error = %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Login() returned empty tokens")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("tokens.TokenType = %q, want Bearer", tokens.TokenType)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		userName string
		password string
		wantErr  error
	}{
		{
			name:     "invalid email",
			email:    "not-an-email",
			userName: "Bob",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "missing name",
			email:    "bob@example.com",
			userName: "   ",
			password: "password123",
			wantErr:  ErrNameRequired,
		},
		{
			name:     "weak password",
			email:    "bob@example.com",
			userName: "Bob",
			password: "short",
			wantErr:  ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.userName, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol@example.com", "Carol", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(ctx, "carol@example.com", "Other Carol", "password456")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() duplicate email error = %v, want %v", err, ErrUserExists)
	}

	// The duplicate check is case-insensitive: the email is the login key.
	_, err = svc.Register(ctx, "CAROL@Example.COM", "Shouting Carol", "password456")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() mixed-case duplicate error = %v, want %v", err, ErrUserExists)
	}

	// No second row was created.
	count := int64(0)
	svc.repo.db.Model(&domain.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestAuthService_LoginIsCaseInsensitiveOnEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Dave@Example.com", "Dave", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login(ctx, "dave@example.com", "password123"); err != nil {
		t.Errorf("Login() with lowercased email error = %v", err)
	}
}

func TestAuthService_LoginUniformFailure(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "erin@example.com", "Erin", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "password123")
	_, errWrongPass := svc.Login(ctx, "erin@example.com", "wrong-password")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("Login() unknown email error = %v, want %v", errUnknown, ErrInvalidCredentials)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want %v", errWrongPass, ErrInvalidCredentials)
	}
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "frank@example.com", "Frank", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	tokens, err := svc.Login(ctx, "frank@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	accessToken, err := svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(ctx, accessToken)
	if err != nil {
		t.Fatalf("ValidateToken() on refreshed token error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, user.ID)
	}

	// An access token must not pass as a refresh token.
	if _, err := svc.RefreshAccessToken(ctx, tokens.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("RefreshAccessToken(access token) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestAuthService_RevokeBlocksRefresh(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "grace@example.com", "Grace", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	tokens, err := svc.Login(ctx, "grace@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Refresh works before revocation.
	if _, err := svc.RefreshAccessToken(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("RefreshAccessToken() before revoke error = %v", err)
	}

	if err := svc.Revoke(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	// Revocation is idempotent.
	if err := svc.Revoke(ctx, tokens.RefreshToken); err != nil {
		t.Errorf("Revoke() second call error = %v, want nil", err)
	}

	_, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	if !errors.Is(err, ErrRevokedToken) {
		t.Errorf("RefreshAccessToken() after revoke error = %v, want %v", err, ErrRevokedToken)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "heidi@example.com", "Heidi", "old-password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Wrong old password.
	err = svc.ChangePassword(ctx, user.ID, "not-the-old-password", "new-password1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ChangePassword() wrong old password error = %v, want %v", err, ErrInvalidCredentials)
	}

	// New password fails policy.
	err = svc.ChangePassword(ctx, user.ID, "old-password1", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("ChangePassword() weak new password error = %v, want %v", err, ErrWeakPassword)
	}

	// Successful change.
	if err := svc.ChangePassword(ctx, user.ID, "old-password1", "new-password1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Login(ctx, "heidi@example.com", "old-password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with old password error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login(ctx, "heidi@example.com", "new-password1"); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}
