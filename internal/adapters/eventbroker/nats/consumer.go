package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// shareLinkReply is the payload sent back to a share requester
type shareLinkReply struct {
	ShareLink string `json:"shareLink,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Consumer is a struct to interact with nats. Share requests use plain
// request-reply on a queue group; the two notification subjects use durable
// JetStream consumers so redeliveries survive a restart.
type Consumer struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
	sub    *nats.Subscription
	iters  []jetstream.MessagesContext
	wg     sync.WaitGroup
}

// NewNATSConsumer creates a new consumer
func NewNATSConsumer(cfg config.NATSConfig, logger *slog.Logger) (*Consumer, error) {
	conn, err := connect(cfg, cfg.ClientName+"-consumer", logger)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return &Consumer{
		logger: logger,
		conn:   conn,
		js:     js,
		config: cfg,
	}, nil
}

// Subscribe wires the globus subjects to the handler
func (n *Consumer) Subscribe(ctx context.Context, handler port.GlobusMessageService) error {
	sub, err := n.conn.QueueSubscribe(n.config.ShareRequestSubject, n.config.QueueGroup, func(msg *nats.Msg) {
		n.handleShareRequest(ctx, handler, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", n.config.ShareRequestSubject, err)
	}
	n.sub = sub

	if err := n.consumeDurable(ctx, n.config.UploadedFilesConsumerName, n.config.UploadedFilesSubject, handler.HandleUploadedFiles); err != nil {
		return err
	}
	if err := n.consumeDurable(ctx, n.config.UnregisterConsumerName, n.config.SubmissionSubmittedSubject, handler.HandleSubmissionSubmitted); err != nil {
		return err
	}

	return nil
}

func (n *Consumer) handleShareRequest(ctx context.Context, handler port.GlobusMessageService, msg *nats.Msg) {
	var reply shareLinkReply

	link, err := handler.HandleShareRequest(ctx, msg.Data)
	if err != nil {
		n.logger.Error("failed to handle share request", "error", err)
		reply.Error = err.Error()
	} else {
		reply.ShareLink = link
	}

	data, err := json.Marshal(reply)
	if err != nil {
		n.logger.Error("failed to encode share reply", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		n.logger.Error("failed to respond to share request", "error", err)
	}
}

func (n *Consumer) consumeDurable(ctx context.Context, consumerName, subject string, handle func(context.Context, []byte) error) error {
	consumerCfg := jetstream.ConsumerConfig{
		Durable:       consumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: subject,
		AckWait:       10 * time.Second,
		MaxDeliver:    5,
		BackOff:       []time.Duration{100 * time.Millisecond, 200 * time.Millisecond},
	}

	cons, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, consumerCfg)
	if err != nil {
		return err
	}

	iter, err := cons.Messages()
	if err != nil {
		return err
	}
	n.iters = append(n.iters, iter)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.logger.Info("NATS subscription started", "subject", subject)
		for {
			select {
			case <-ctx.Done():
				n.logger.Info("NATS subscription stopped", "subject", subject)
				return
			default:
				msg, err := iter.Next()
				if err != nil {
					if ctx.Err() != nil {
						n.logger.Info("NATS subscription stopped", "subject", subject)
						return
					}
					n.logger.Error("failed to receive message", "subject", subject, "error", err)
					return
				}

				if handleErr := handle(ctx, msg.Data()); handleErr != nil {
					if errNak := msg.Nak(); errNak != nil {
						n.logger.Error("failed to nak message", "error", errNak)
					}
					n.logger.Warn("failed to handle message", "subject", subject, "error", handleErr)
					continue
				}
				if ackErr := msg.Ack(); ackErr != nil {
					n.logger.Error("failed to ack message", "error", ackErr)
				}
			}
		}
	}()
	return nil
}

// Close graceful shutdown
func (n *Consumer) Close() error {
	if n.sub != nil {
		if err := n.sub.Drain(); err != nil {
			n.logger.Error("failed to drain share request subscription", "error", err)
		}
	}

	for _, iter := range n.iters {
		iter.Stop()
	}

	n.wg.Wait()

	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
