package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubVerifier は固定の結果を返すVerifierです。
type stubVerifier struct {
	id  Identity
	err error
	got string
}

func (s *stubVerifier) Verify(token string) (Identity, error) {
	s.got = token
	return s.id, s.err
}

func run(v Verifier, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	AuthRequired(v)(c)
	return w, c
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やスキームが不正な場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
		{"blank token", "Bearer    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{}
			w, c := run(v, tt.authHeader)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
			if v.got != "" {
				t.Error("verifier must not be called")
			}
		})
	}
}

// TestAuthRequired_InvalidToken は検証に失敗したトークンで403が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	w, c := run(&stubVerifier{err: ErrInvalidToken}, "Bearer expired")

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected request to be aborted")
	}
	if _, ok := IdentityFrom(c); ok {
		t.Error("identity must not be set")
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、Identityが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	want := Identity{UserID: uuid.New(), Username: "alice"}
	v := &stubVerifier{id: want}

	w, c := run(v, "Bearer good-token")

	if c.IsAborted() {
		t.Fatalf("expected request not to be aborted, response: %s", w.Body.String())
	}
	if v.got != "good-token" {
		t.Errorf("expected verifier to receive the raw token, got %q", v.got)
	}
	got, ok := IdentityFrom(c)
	if !ok {
		t.Fatal("expected identity to be set in context")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

// TestAuthRequired_WithManager は実際のManagerと組み合わせた動作を検証します。
func TestAuthRequired_WithManager(t *testing.T) {
	m := NewManager("secret", DefaultTTL)
	userID := uuid.New()
	token, err := m.GenerateToken(userID, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, c := run(m, "Bearer "+token)
	id, ok := IdentityFrom(c)
	if !ok || id.UserID != userID {
		t.Errorf("expected identity for %s, got %+v", userID, id)
	}

	w, _ := run(NewManager("other", DefaultTTL), "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestIdentityFrom_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextIdentity, "not an identity")

	if _, ok := IdentityFrom(c); ok {
		t.Error("expected ok=false for a foreign value")
	}
}
