package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ncfqr/internal/logger"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// SessionID returns the id placed in the context by SessionMiddleware.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

func CORSMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Sec-CH-Viewport-Width")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
			if origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log := logger.Get()
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("Request handled")
	})
}

type sessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionTokens signs and verifies the session cookie.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret []byte, ttl time.Duration) *SessionTokens {
	return &SessionTokens{secret: secret, ttl: ttl, now: time.Now}
}

func (t *SessionTokens) Sign(id string) (string, error) {
	now := t.now()
	claims := sessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *SessionTokens) Parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", errors.New("invalid session id")
	}
	return claims.SessionID, nil
}

// SessionMiddleware resolves the session id from the signed cookie, or
// starts a new session when the cookie is missing, expired or forged. The
// cookie is re-issued on every request so active sessions keep sliding.
func SessionMiddleware(tokens *SessionTokens, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cookieName); err == nil {
				if parsed, err := tokens.Parse(c.Value); err == nil {
					id = parsed
				} else {
					log := logger.Get()
					log.Debug().Err(err).Msg("Discarding session cookie")
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			signed, err := tokens.Sign(id)
			if err != nil {
				http.Error(w, "failed to sign session token", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(tokens.ttl.Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), SessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
