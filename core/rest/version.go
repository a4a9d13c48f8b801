package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Version number of the backend. The variable is set with ldflags at
// build time.
var Version string = "unset"

func (b *Backend) handleVersion(router *mux.Router) {
	router.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	}).Methods(http.MethodOptions, http.MethodGet)
}
