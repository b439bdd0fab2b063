package file

import (
	"errors"
	"net/http"
	"strings"

	chihandlers "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/handlers/http/chi/response"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// DeleteFileV1 deletes a tracked file on behalf of the submitter
func (h *HandlerV1) DeleteFileV1(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		chihandlers.WriteError(w, http.StatusUnauthorized, domain.ErrJWTTokenRequired.Error())
		return
	}

	deleteErr := h.fileService.DeleteFile(r.Context(), uploadID, token)
	switch {
	case deleteErr == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(deleteErr, domain.ErrFileNotFound), errors.Is(deleteErr, domain.ErrSubmissionNotFound):
		chihandlers.WriteError(w, http.StatusNotFound, deleteErr.Error())
	case errors.Is(deleteErr, domain.ErrSubmissionNotModifiable), errors.Is(deleteErr, domain.ErrFileStatusConflict):
		h.logger.Warn("file deletion rejected", "uploadID", uploadID, "error", deleteErr)
		chihandlers.WriteError(w, http.StatusConflict, deleteErr.Error())
	case errors.Is(deleteErr, domain.ErrInvalidToken), errors.Is(deleteErr, domain.ErrUnauthorized):
		chihandlers.WriteError(w, http.StatusUnauthorized, deleteErr.Error())
	default:
		h.logger.Error("error deleting file", "uploadID", uploadID, "error", deleteErr)
		chihandlers.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
