package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pandamarket/api/pkg/apperror"
)

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondMessage sends the uniform `{"message": ...}` error body
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondError maps a usecase error onto its status code and client-safe
// message. This is the single place the error taxonomy meets HTTP.
func RespondError(w http.ResponseWriter, err error) {
	RespondMessage(w, apperror.Status(err), apperror.Message(err))
}
