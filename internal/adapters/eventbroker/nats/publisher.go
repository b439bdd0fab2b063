package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher publishes validation work items to JetStream
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, err := connect(cfg, cfg.ClientName+"-publisher", logger)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return &Publisher{
		logger: logger,
		conn:   conn,
		js:     js,
		config: cfg,
	}, nil
}

// EnsureStream creates or updates the stream carrying this service's subjects
func (p *Publisher) EnsureStream(ctx context.Context) error {
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name: p.config.StreamName,
		Subjects: []string{
			p.config.ChecksumGenerationSubject,
			p.config.ContentValidationSubject,
			p.config.FileDeletedValidationSubject,
			p.config.UploadedFilesSubject,
			p.config.SubmissionSubmittedSubject,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", p.config.StreamName, err)
	}
	return nil
}

func (p *Publisher) PublishChecksumGeneration(ctx context.Context, msg domain.ChecksumGenerationMessage) error {
	return p.publish(ctx, p.config.ChecksumGenerationSubject, msg)
}

func (p *Publisher) PublishFileContentValidation(ctx context.Context, msg domain.FileContentValidationMessage) error {
	return p.publish(ctx, p.config.ContentValidationSubject, msg)
}

func (p *Publisher) PublishFileDeletedValidation(ctx context.Context, msg domain.FileDeletedValidationMessage) error {
	return p.publish(ctx, p.config.FileDeletedValidationSubject, msg)
}

func (p *Publisher) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message for %s: %w", subject, err)
	}

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	p.logger.Debug("message published", "subject", subject)

	return nil
}

// Close graceful shutdown
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

func connect(cfg config.NATSConfig, name string, logger *slog.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}
