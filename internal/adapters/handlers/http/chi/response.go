package chi

import (
	"net/http"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/handlers/http/chi/response"
)

// ErrorResponse is the JSON body returned with every non-2xx response
type ErrorResponse = response.ErrorResponse

// WriteError writes an ErrorResponse with the given status
func WriteError(w http.ResponseWriter, status int, message string) {
	response.WriteError(w, status, message)
}
