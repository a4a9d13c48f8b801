package access

import (
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/brille-tech/backend/core/csql"
	"github.com/brille-tech/backend/core/logger"
)

// LoginBuilder is a helper builder for the login route
type LoginBuilder struct {
	// Secret is the HMAC signing secret shared with the session
	// middleware. This is mandatory.
	Secret string
	// DB is the postgres database holding the users table. This is mandatory.
	DB *csql.DB
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// Validity is the session lifetime. Defaults to 24 hours.
	Validity time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLoginRoute adds the POST /api/login route. Credentials are checked
// against the users table with a bcrypt comparison; on success a session
// token is returned in the body and as cookie.
func HandleLoginRoute(lb *LoginBuilder) {
	if lb.DB == nil {
		panic("DB is missing")
	}
	if lb.Router == nil {
		panic("Router is missing")
	}
	if lb.Secret == "" {
		panic("Secret is missing")
	}
	validity := lb.Validity
	if validity == 0 {
		validity = 24 * time.Hour
	}

	loginQuery := fmt.Sprintf(`SELECT id, email, password, admin FROM %s."users" WHERE email = $1;`, lb.DB.Schema)

	login := func(w http.ResponseWriter, r *http.Request) {
		rlog := logger.FromContext(r.Context())

		var request loginRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json data: "+err.Error())
			return
		}
		if request.Email == "" || request.Password == "" {
			writeError(w, http.StatusUnprocessableEntity, "email and password are required")
			return
		}

		var auth Authorization
		var hash string
		err := lb.DB.QueryRowContext(r.Context(), loginQuery, request.Email).
			Scan(&auth.UserID, &auth.Email, &hash, &auth.Admin)
		if err == csql.ErrNoRows {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			rlog.WithError(err).Errorf("cannot execute login query")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(request.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := CreateToken(lb.Secret, auth, validity)
		if err != nil {
			rlog.WithError(err).Errorf("cannot sign session token")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(validity),
			HttpOnly: true,
		})
		jsonData, _ := json.Marshal(map[string]string{"token": token})
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(jsonData)
	}

	lb.Router.HandleFunc("/api/login", login).Methods(http.MethodOptions, http.MethodPost)
}
