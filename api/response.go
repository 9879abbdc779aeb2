package api

import (
	"net/http"
	"time"
)

// errorResponse is the error body returned for failed requests
type errorResponse struct {
	Timestamp    time.Time `json:"timestamp"`
	Status       int       `json:"status"`
	ErrorMessage string    `json:"errorMessage"` // status name, e.g. "BAD_REQUEST"
	Message      string    `json:"message"`
	Path         string    `json:"path"`
}

var statusNames = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
	http.StatusBadGateway:          "BAD_GATEWAY",
}

func statusName(status int) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return http.StatusText(status)
}

func (s *Server) writeErrorBody(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorResponse{
		Timestamp:    time.Now().UTC(),
		Status:       status,
		ErrorMessage: statusName(status),
		Message:      message,
		Path:         r.URL.Path,
	})
}
