package access

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"

	"github.com/brille-tech/backend/core/logger"
)

// SessionCookie is the cookie name the login route sets and the middleware
// accepts as an alternative to the Authorization header.
const SessionCookie = "Brille-JWT"

type sessionClaims struct {
	UserID int64 `json:"user_id"`
	Admin  bool  `json:"admin"`
	jwt.RegisteredClaims
}

// CreateToken signs a session token for the given authorization. The email
// becomes the token subject.
func CreateToken(secret string, auth Authorization, validity time.Duration) (string, error) {
	claims := sessionClaims{
		UserID: auth.UserID,
		Admin:  auth.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   auth.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a session token and returns the authorization it
// carries.
func ParseToken(secret, tokenString string) (*Authorization, error) {
	claims := sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &Authorization{
		UserID: claims.UserID,
		Email:  claims.Subject,
		Admin:  claims.Admin,
	}, nil
}

// JwtMiddlewareBuilder is a helper builder for the session middleware
type JwtMiddlewareBuilder struct {
	// Secret is the HMAC signing secret shared with the login route.
	// This is mandatory.
	Secret string
}

// NewJwtMiddleware returns a middleware handler that validates session
// tokens. Tokens are accepted as "Authorization: Bearer" header or as
// session cookie.
//
// This is a final handler with regards to the bearer token: a request that
// presents a token which does not verify is answered with
// http.StatusUnauthorized. A request without any token passes through
// without an authorization; the resource handlers decide whether one is
// required.
func NewJwtMiddleware(jmb *JwtMiddlewareBuilder) mux.MiddlewareFunc {
	if jmb.Secret == "" {
		panic("Secret is missing")
	}
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := AuthorizationFromContext(r.Context()); auth != nil { // already authorized?
				h.ServeHTTP(w, r)
				return
			}

			tokenString := ""
			bearer := r.Header.Get("Authorization")
			if len(bearer) > 0 && bearer != "null" {
				if len(bearer) >= 8 && strings.ToLower(bearer[:7]) == "bearer " {
					tokenString = bearer[7:]
				} else {
					tokenString = bearer
				}
			} else if cookie, _ := r.Cookie(SessionCookie); cookie != nil {
				tokenString = cookie.Value
			}
			if len(tokenString) == 0 {
				h.ServeHTTP(w, r) // no token no auth, moving on
				return
			}

			auth, err := ParseToken(jmb.Secret, tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := ContextWithAuthorization(r.Context(), auth)
			ctx, _ = logger.ContextWithLoggerIdentity(ctx, auth.Email)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
