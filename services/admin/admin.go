// The brille admin backend. It serves the resource lifecycle routes for the
// admin console plus the login route, backed by postgres.
package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/brille-tech/backend/core/access"
	"github.com/brille-tech/backend/core/csql"
	"github.com/brille-tech/backend/core/logger"
	"github.com/brille-tech/backend/core/rest"
	"github.com/brille-tech/backend/services/admin/catalog"
)

// Service holds the configuration, decoded from the environment
type Service struct {
	Postgres             string `env:"POSTGRES,required"`
	Port                 string `env:"PORT,default=8080"`
	AllowedOrigins       string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	JWTSecret            string `env:"JWT_SECRET,required"`
	UpdateSchema         bool   `env:"UPDATE_SCHEMA,default=false"`
	AuthorizationEnabled bool   `env:"AUTHORIZATION_ENABLED,default=true"`
	LogLevel             string `env:"LOG_LEVEL,default=info"`
}

func main() {
	var service Service
	if err := envdecode.Decode(&service); err != nil {
		panic(err)
	}
	level, err := logrus.ParseLevel(service.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.InitLogger(level)
	rlog := logger.Default()
	rlog.Infoln("brille admin backend, version", rest.Version)

	db := csql.OpenWithSchema(service.Postgres, "brille")
	defer db.Close()

	router := mux.NewRouter()
	logger.AddRequestID(router)
	router.Use(access.NewJwtMiddleware(&access.JwtMiddlewareBuilder{
		Secret: service.JWTSecret,
	}))

	rest.New(&rest.Builder{
		Resources:            catalog.Resources(),
		DB:                   db,
		Router:               router,
		UpdateSchema:         service.UpdateSchema,
		AuthorizationEnabled: service.AuthorizationEnabled,
	})
	access.HandleLoginRoute(&access.LoginBuilder{
		Secret: service.JWTSecret,
		DB:     db,
		Router: router,
	})

	// the console reads the pagination header, it must be exposed
	cors := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(service.AllowedOrigins, ",")),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{"Content-Range"}),
		handlers.AllowCredentials(),
	)

	rlog.Infoln("listening on port", service.Port)
	rlog.Fatal(http.ListenAndServe(":"+service.Port, cors(router)))
}
