// Package jwtmw はJWTトークンの発行・検証と、それを用いたGinの認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL はトークンの既定の有効期間（7日）です。
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned by Verify for any token that must not be trusted:
// bad signature, non-HMAC algorithm, malformed, expired or missing subject.
var ErrInvalidToken = errors.New("invalid token")

// Identity はトークンから復元された呼び出し元です。
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Claims はトークンのペイロードです。subにユーザーIDを格納します。
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager はHS256トークンの発行と検証を行います。
type Manager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewManager creates a Manager signing with secret. A non-positive expiration falls back to DefaultTTL.
func NewManager(secret string, expiration time.Duration) *Manager {
	if expiration <= 0 {
		expiration = DefaultTTL
	}
	return &Manager{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
func (m *Manager) GenerateToken(userID uuid.UUID, username string) (string, error) {
	now := m.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、呼び出し元のIdentityを返します。
func (m *Manager) Verify(tokenStr string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		// HMAC以外のアルゴリズムは拒否する
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: id, Username: claims.Username}, nil
}
