package web

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope used for non-chart JSON replies.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func successResponse(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Status: "success", Data: data})
}

func errorResponse(w http.ResponseWriter, status int, message string, err any) {
	writeJSON(w, status, Response{Status: "error", Message: message, Error: err})
}

func badRequest(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusBadRequest, message, nil)
}

func notFound(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusNotFound, message, nil)
}

// internalError hides err from the client unless debug is on.
func internalError(w http.ResponseWriter, message string, err error, debug bool) {
	var detail any
	if debug && err != nil {
		detail = err.Error()
	}
	errorResponse(w, http.StatusInternalServerError, message, detail)
}
