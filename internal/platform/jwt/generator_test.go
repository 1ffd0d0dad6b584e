package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TestNewManager は各種設定でManagerが正しく生成されることを検証します。
func TestNewManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
		want       time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour, time.Hour},
		{"zero expiration falls back to default", "secret", 0, DefaultTTL},
		{"negative expiration falls back to default", "s", -time.Minute, DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(tt.secret, tt.expiration)

			if string(m.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(m.secret))
			}
			if m.expiration != tt.want {
				t.Errorf("expected expiration %v, got %v", tt.want, m.expiration)
			}
		})
	}
}

// TestManager_GenerateToken は生成されたトークンがHS256で署名され、正しいクレームを含むことを検証します。
func TestManager_GenerateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	m := NewManager("test-secret", time.Hour)

	tokenStr, err := m.GenerateToken(userID, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			t.Errorf("expected HS256, got %v", tok.Header["alg"])
		}
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("expected sub %q, got %q", userID, claims.Subject)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %q", claims.Username)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expected exp-iat of 1h, got %v", got)
	}
}

// TestManager_Verify は発行したトークンの検証と、不正なトークンの拒否を検証します。
func TestManager_Verify(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	userID := uuid.New()
	m := NewManager(secret, time.Hour)
	valid, err := m.GenerateToken(userID, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expired := NewManager(secret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.GenerateToken(userID, "alice")

	otherSecret, _ := NewManager("wrong-secret", time.Hour).GenerateToken(userID, "alice")

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", valid, false},
		{"malformed token", "not.a.valid.token", true},
		{"random string", "randomstring", true},
		{"wrong secret", otherSecret, true},
		{"expired token", expiredToken, true},
		{"none algorithm", signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, userID.String()), true},
		{"HS512 is not accepted", signed(t, jwt.SigningMethodHS512, []byte(secret), userID.String()), true},
		{"subject is not a uuid", signed(t, jwt.SigningMethodHS256, []byte(secret), "42"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := m.Verify(tt.token)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.UserID != userID || id.Username != "alice" {
				t.Errorf("unexpected identity: %+v", id)
			}
		})
	}
}

// signed はテスト用に任意のアルゴリズム・subjectでトークンを生成します。
func signed(t *testing.T, method jwt.SigningMethod, key any, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}
