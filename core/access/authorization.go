// Package access provides session authentication for the admin console:
// a login route exchanging credentials for a JWT, and a middleware that
// turns a bearer token back into an Authorization on the request context.
package access

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
)

// Authorization is the authenticated session attached to a request context.
type Authorization struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}

type contextKeyAuthorizationType struct{}

var contextKeyAuthorization = &contextKeyAuthorizationType{}

// ContextWithAuthorization returns a new context with the authorization added
func ContextWithAuthorization(ctx context.Context, auth *Authorization) context.Context {
	return context.WithValue(ctx, contextKeyAuthorization, auth)
}

// AuthorizationFromContext returns the authorization from the context, or nil
// if the request carries no valid session.
func AuthorizationFromContext(ctx context.Context) *Authorization {
	auth, ok := ctx.Value(contextKeyAuthorization).(*Authorization)
	if !ok {
		return nil
	}
	return auth
}

func writeError(w http.ResponseWriter, status int, message string) {
	jsonData, _ := json.Marshal(map[string]interface{}{
		"status":  status,
		"message": message,
	})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(jsonData)
}
