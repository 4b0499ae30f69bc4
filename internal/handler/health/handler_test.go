package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func serve(db Pinger, target string) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(db).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRootAndLiveness(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })

	w := serve(ok, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"MailToCall API is running"}`, w.Body.String())

	w = serve(ok, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	w := serve(pingerFunc(func(context.Context) error { return nil }), "/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(pingerFunc(func(context.Context) error { return errors.New("refused") }), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
