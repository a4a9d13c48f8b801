package access

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	auth := Authorization{UserID: 42, Email: "admin@example.com", Admin: true}
	token, err := CreateToken(testSecret, auth, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, auth, *parsed)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, Authorization{Email: "a@b.de"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("another-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := CreateToken(testSecret, Authorization{Email: "a@b.de"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func newMiddlewareRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(NewJwtMiddleware(&JwtMiddlewareBuilder{Secret: testSecret}))
	router.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		auth := AuthorizationFromContext(r.Context())
		if auth == nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(auth.Email))
	}).Methods(http.MethodGet)
	return router
}

func TestMiddlewarePassesWithoutToken(t *testing.T) {
	router := newMiddlewareRouter()

	r, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	router := newMiddlewareRouter()

	r, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	router := newMiddlewareRouter()
	token, err := CreateToken(testSecret, Authorization{UserID: 1, Email: "admin@example.com", Admin: true}, time.Hour)
	require.NoError(t, err)

	r, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@example.com", rec.Body.String())
}

func TestMiddlewareAcceptsCookie(t *testing.T) {
	router := newMiddlewareRouter()
	token, err := CreateToken(testSecret, Authorization{UserID: 1, Email: "cookie@example.com"}, time.Hour)
	require.NoError(t, err)

	r, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie@example.com", rec.Body.String())
}
