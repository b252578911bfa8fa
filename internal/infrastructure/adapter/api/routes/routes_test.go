package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	timeprovider "github.com/davidokon/secretshop/internal/infrastructure/adapter/time"
)

func newTestRouter(sessions *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	guard := session.NewAdminGuard(session.AdminConfig{
		Passcode:   "letmein",
		SigningKey: "test-signing-key",
	}, timeprovider.NewRealTimeProvider())

	SetupRoutes(router, Handlers{}, sessions, guard, metrics.New(), func(ctx context.Context) error {
		return nil
	})
	return router
}

// loginCookies performs a session log-in out of band and returns the
// resulting cookies for replay on later requests.
func loginCookies(t *testing.T, sessions *session.Manager, userID uint64) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	err := sessions.LogIn(w, r, userID)
	assert.NoError(t, err)
	return w.Result().Cookies()
}

func TestPaymentRouteRequiresSession(t *testing.T) {
	sessions := session.NewManager(session.Config{Secret: "test-secret"})
	router := newTestRouter(sessions)

	t.Run("should redirect anonymous payment page requests to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/payment/1", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("should reach the payment handler with a logged-in session", func(t *testing.T) {
		w := httptest.NewRecorder()
		// A malformed product ID makes the handler answer before touching
		// any dependency, so reaching it is observable as a 404.
		req := httptest.NewRequest(http.MethodGet, "/payment/not-a-number", nil)
		for _, c := range loginCookies(t, sessions, 7) {
			req.AddCookie(c)
		}

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	sessions := session.NewManager(session.Config{Secret: "test-secret"})
	router := newTestRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
