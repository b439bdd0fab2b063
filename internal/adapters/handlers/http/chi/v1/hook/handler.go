package hook

import (
	"log/slog"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the upload daemon's hook events
type HandlerV1 struct {
	hookService port.HookService
	logger      *slog.Logger
}

// NewHookHandlerV1 creates HandlerV1
func NewHookHandlerV1(service port.HookService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		hookService: service,
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.HandleEventV1)

	return router
}
