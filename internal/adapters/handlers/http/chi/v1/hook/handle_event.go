package hook

import (
	"encoding/json"
	"errors"
	"net/http"

	chihandlers "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/handlers/http/chi/response"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// HandleEventV1 processes one hook event posted by the upload daemon. The
// event type rides in the Hook-Name header, the upload info in the body.
// A non-2xx response to pre-create makes the daemon reject the upload.
func (h *HandlerV1) HandleEventV1(w http.ResponseWriter, r *http.Request) {
	eventType, err := domain.ParseHookEventType(r.Header.Get("Hook-Name"))
	if err != nil {
		h.logger.Error("unsupported hook event", "hookName", r.Header.Get("Hook-Name"))
		chihandlers.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var info domain.TUSFileInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.logger.Error("error decoding hook event body", "error", err)
		chihandlers.WriteError(w, http.StatusBadRequest, "malformed event body")
		return
	}

	handleErr := h.hookService.Handle(r.Context(), eventType, info)
	switch {
	case handleErr == nil:
		if eventType == domain.HookPostTerminate {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.WriteHeader(http.StatusOK)
	case errors.Is(handleErr, domain.ErrJWTTokenRequired),
		errors.Is(handleErr, domain.ErrSubmissionIDRequired),
		errors.Is(handleErr, domain.ErrFilenameRequired),
		errors.Is(handleErr, domain.ErrNotEnoughDiskSpace),
		errors.Is(handleErr, domain.ErrSubmissionNotModifiable):
		h.logger.Warn("upload request rejected", "event", eventType, "error", handleErr)
		chihandlers.WriteError(w, http.StatusUnprocessableEntity, handleErr.Error())
	case errors.Is(handleErr, domain.ErrInvalidToken), errors.Is(handleErr, domain.ErrUnauthorized):
		chihandlers.WriteError(w, http.StatusUnauthorized, handleErr.Error())
	case errors.Is(handleErr, domain.ErrDuplicateFile),
		errors.Is(handleErr, domain.ErrAlreadyExists),
		errors.Is(handleErr, domain.ErrFileStatusConflict):
		h.logger.Warn("conflicting hook event", "event", eventType, "error", handleErr)
		chihandlers.WriteError(w, http.StatusConflict, handleErr.Error())
	case errors.Is(handleErr, domain.ErrFileNotFound), errors.Is(handleErr, domain.ErrSubmissionNotFound):
		chihandlers.WriteError(w, http.StatusNotFound, handleErr.Error())
	case errors.Is(handleErr, domain.ErrRelocationFailed):
		// The upload itself succeeded; relocation will be re-driven. Accepted
		// keeps the daemon from discarding the completed upload.
		h.logger.Error("relocation failed", "event", eventType, "error", handleErr)
		chihandlers.WriteError(w, http.StatusAccepted, handleErr.Error())
	default:
		h.logger.Error("error handling hook event", "event", eventType, "error", handleErr)
		chihandlers.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
