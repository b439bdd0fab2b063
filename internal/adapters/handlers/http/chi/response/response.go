package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body returned with every non-2xx response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// WriteError writes an ErrorResponse with the given status
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Status: status, Message: message})
}
