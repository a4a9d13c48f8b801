package rest

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

func writeJSON(w http.ResponseWriter, status int, object interface{}) {
	jsonData, _ := json.MarshalWithOption(object, json.DisableHTMLEscape())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func writeError(w http.ResponseWriter, e *Error) {
	writeJSON(w, e.Status, e)
}

// writeContentRange emits the range descriptor the admin console uses to
// drive its pagination UI. The shape "{resource} : 0-{n}/{n+1}" including
// the surplus element in the total is a frontend contract and must not be
// normalized.
func writeContentRange(w http.ResponseWriter, resource string, count int) {
	w.Header().Set("Content-Range", fmt.Sprintf("%s : 0-%d/%d", resource, count, count+1))
}
