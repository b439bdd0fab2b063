package hook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

type hookService struct {
	files      port.FileRepository
	gatekeeper port.Gatekeeper
	staging    port.StagingStore
	dispatcher port.Dispatcher
	tokens     port.TokenVerifier
	cfg        config.UploadConfig
	logger     *slog.Logger
}

// NewHookService creates the service that advances a file record through its
// lifecycle as the tusd server reports hook events
func NewHookService(
	files port.FileRepository,
	gatekeeper port.Gatekeeper,
	staging port.StagingStore,
	dispatcher port.Dispatcher,
	tokens port.TokenVerifier,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.HookService {
	return &hookService{
		files:      files,
		gatekeeper: gatekeeper,
		staging:    staging,
		dispatcher: dispatcher,
		tokens:     tokens,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *hookService) Handle(ctx context.Context, eventType domain.HookEventType, info domain.TUSFileInfo) error {
	switch eventType {
	case domain.HookPreCreate:
		return s.preCreate(ctx, info)
	case domain.HookPostCreate:
		return s.postCreate(ctx, info)
	case domain.HookPostReceive:
		return s.postReceive(ctx, info)
	case domain.HookPostFinish:
		return s.postFinish(ctx, info)
	case domain.HookPostTerminate:
		return s.postTerminate(ctx, info)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedEvent, eventType)
	}
}
