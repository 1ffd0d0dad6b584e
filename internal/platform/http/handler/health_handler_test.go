package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

var (
	dbUp   = pingerFunc(func(context.Context) error { return nil })
	dbDown = pingerFunc(func(context.Context) error { return errors.New("connection refused") })
)

func healthRouter(deps ...Pinger) *gin.Engine {
	r := gin.New()
	h := Health(deps...)
	r.GET("/healthz", h)
	r.HEAD("/healthz", h)
	r.OPTIONS("/healthz", h)
	return r
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deps     []Pinger
		method   string
		wantCode int
		wantBody string
	}{
		{"GET without deps", nil, http.MethodGet, http.StatusOK, `{"status":"ok"}`},
		{"GET with db up", []Pinger{dbUp}, http.MethodGet, http.StatusOK, `{"status":"ok"}`},
		{"HEAD has no body", []Pinger{dbUp}, http.MethodHead, http.StatusOK, ""},
		{"OPTIONS skips pings", []Pinger{dbDown}, http.MethodOptions, http.StatusNoContent, ""},
		{"GET with db down", []Pinger{dbDown}, http.MethodGet, http.StatusServiceUnavailable, `{"status":"unavailable"}`},
		{"HEAD with db down", []Pinger{dbUp, dbDown}, http.MethodHead, http.StatusServiceUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			healthRouter(tt.deps...).ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.wantBody == "" {
				assert.Zero(t, w.Body.Len())
			} else {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestHealth_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	var pinged []string
	named := func(name string, err error) Pinger {
		return pingerFunc(func(context.Context) error {
			pinged = append(pinged, name)
			return err
		})
	}
	r := healthRouter(named("db", errors.New("down")), named("other", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, []string{"db"}, pinged)
}

func TestHealth_PingHasDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	r := healthRouter(pingerFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.True(t, hasDeadline)
}
