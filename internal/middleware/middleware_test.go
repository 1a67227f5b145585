package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const cookieName = "ncfqr_session"

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(SessionID(r.Context())))
	})
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", cookieName)
	return nil
}

func TestSessionTokensRoundTrip(t *testing.T) {
	tokens := NewSessionTokens([]byte("secret"), time.Minute)
	id := uuid.NewString()

	signed, err := tokens.Sign(id)
	require.NoError(t, err)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestSessionTokensRejects(t *testing.T) {
	tokens := NewSessionTokens([]byte("secret"), time.Minute)
	id := uuid.NewString()

	t.Run("wrong secret", func(t *testing.T) {
		signed, err := NewSessionTokens([]byte("other"), time.Minute).Sign(id)
		require.NoError(t, err)
		_, err = tokens.Parse(signed)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		signed, err := tokens.Sign(id)
		require.NoError(t, err)
		later := NewSessionTokens([]byte("secret"), time.Minute)
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err = later.Parse(signed)
		require.Error(t, err)
	})

	t.Run("non uuid id", func(t *testing.T) {
		signed, err := tokens.Sign("../../etc")
		require.NoError(t, err)
		_, err = tokens.Parse(signed)
		require.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := sessionClaims{SessionID: id}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Parse(signed)
		require.Error(t, err)
	})
}

func TestSessionMiddleware(t *testing.T) {
	tokens := NewSessionTokens([]byte("secret"), time.Minute)
	h := SessionMiddleware(tokens, cookieName)(echoSession())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	first := rec.Body.String()
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	cookie := sessionCookie(t, rec)
	require.True(t, cookie.HttpOnly)

	t.Run("cookie keeps the session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, first, rec.Body.String())
	})

	t.Run("forged cookie starts a new session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.NotEqual(t, first, rec.Body.String())
		require.NotEmpty(t, rec.Body.String())
	})
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware("https://qr.ncf.edu.ph")(echoSession())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/session", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://qr.ncf.edu.ph", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}
