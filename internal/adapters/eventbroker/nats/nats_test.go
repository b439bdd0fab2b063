package nats_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	broker "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/eventbroker/nats"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type fakeGlobusHandler struct {
	mu          sync.Mutex
	uploaded    [][]byte
	submitted   [][]byte
	shareErr    error
	received    chan struct{}
	shareLink   string
	shareCalled int
}

func (f *fakeGlobusHandler) HandleShareRequest(ctx context.Context, data []byte) (string, error) {
	f.mu.Lock()
	f.shareCalled++
	f.mu.Unlock()
	if f.shareErr != nil {
		return "", f.shareErr
	}
	return f.shareLink, nil
}

func (f *fakeGlobusHandler) HandleUploadedFiles(ctx context.Context, data []byte) error {
	f.mu.Lock()
	f.uploaded = append(f.uploaded, data)
	f.mu.Unlock()
	if f.received != nil {
		f.received <- struct{}{}
	}
	return nil
}

func (f *fakeGlobusHandler) HandleSubmissionSubmitted(ctx context.Context, data []byte) error {
	f.mu.Lock()
	f.submitted = append(f.submitted, data)
	f.mu.Unlock()
	if f.received != nil {
		f.received <- struct{}{}
	}
	return nil
}

func setupNATSContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func testConfig(natsURL string) config.NATSConfig {
	return config.NATSConfig{
		URL:                          natsURL,
		ClientName:                   "file-upload-test",
		StreamName:                   "SUBMISSIONS-TEST",
		QueueGroup:                   "file-upload",
		ChecksumGenerationSubject:    "file.checksum.generation",
		ContentValidationSubject:     "file.content.validation",
		FileDeletedValidationSubject: "file.deleted.validation",
		ShareRequestSubject:          "globus.share.request",
		UploadedFilesSubject:         "globus.uploaded.files",
		SubmissionSubmittedSubject:   "usi.submission.submitted",
		UploadedFilesConsumerName:    "fu-globus-uploaded-files",
		UnregisterConsumerName:       "fu-globus-sub-unregister",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_PublishChecksumGeneration(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL)
	publisher, err := broker.NewNATSPublisher(cfg, discardLogger())
	require.NoError(t, err)
	defer publisher.Close()
	require.NoError(t, publisher.EnsureStream(context.Background()))

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()
	js, err := nc.JetStream()
	require.NoError(t, err)

	sub, err := js.SubscribeSync(cfg.ChecksumGenerationSubject)
	require.NoError(t, err)

	// Act
	err = publisher.PublishChecksumGeneration(context.Background(), domain.ChecksumGenerationMessage{GeneratedUploadID: "tus-1"})

	// Assert
	require.NoError(t, err)

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)

	var received domain.ChecksumGenerationMessage
	require.NoError(t, json.Unmarshal(msg.Data, &received))
	assert.Equal(t, "tus-1", received.GeneratedUploadID)
}

func TestConsumer_ShareRequestReply(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL)
	publisher, err := broker.NewNATSPublisher(cfg, discardLogger())
	require.NoError(t, err)
	defer publisher.Close()
	require.NoError(t, publisher.EnsureStream(context.Background()))

	handler := &fakeGlobusHandler{shareLink: "https://app.globus.org/file-manager?origin_id=ep-1"}
	consumer, err := broker.NewNATSConsumer(cfg, discardLogger())
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(context.Background(), handler))

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	// Act
	reply, err := nc.Request(cfg.ShareRequestSubject, []byte(`{"owner":"usr-ana","submissionId":"sub-1"}`), 2*time.Second)

	// Assert
	require.NoError(t, err)

	var body struct {
		ShareLink string `json:"shareLink"`
		Error     string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(reply.Data, &body))
	assert.Equal(t, "https://app.globus.org/file-manager?origin_id=ep-1", body.ShareLink)
	assert.Empty(t, body.Error)
}

func TestConsumer_UploadedFilesNotification(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL)
	publisher, err := broker.NewNATSPublisher(cfg, discardLogger())
	require.NoError(t, err)
	defer publisher.Close()
	require.NoError(t, publisher.EnsureStream(context.Background()))

	handler := &fakeGlobusHandler{received: make(chan struct{}, 1)}
	consumer, err := broker.NewNATSConsumer(cfg, discardLogger())
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(context.Background(), handler))

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()
	js, err := nc.JetStream()
	require.NoError(t, err)

	// Act
	payload := []byte(`{"owner":"usr-ana","submissionId":"sub-1","files":["reads.fastq.gz"]}`)
	_, err = js.Publish(cfg.UploadedFilesSubject, payload)
	require.NoError(t, err)

	// Assert
	select {
	case <-handler.received:
	case <-time.After(2 * time.Second):
		t.Fatal("uploaded files notification not received")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	require.Len(t, handler.uploaded, 1)
	assert.JSONEq(t, string(payload), string(handler.uploaded[0]))
}

func TestConsumer_GracefulShutdown(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL)
	publisher, err := broker.NewNATSPublisher(cfg, discardLogger())
	require.NoError(t, err)
	defer publisher.Close()
	require.NoError(t, publisher.EnsureStream(context.Background()))

	handler := &fakeGlobusHandler{received: make(chan struct{}, 1)}
	consumer, err := broker.NewNATSConsumer(cfg, discardLogger())
	require.NoError(t, err)
	require.NoError(t, consumer.Subscribe(context.Background(), handler))

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()
	js, err := nc.JetStream()
	require.NoError(t, err)

	// Act
	require.NoError(t, consumer.Close())
	_, err = js.Publish(cfg.SubmissionSubmittedSubject, []byte(`{"submission":{"id":"sub-1","createdBy":"usr-ana"}}`))
	require.NoError(t, err)

	// Assert
	select {
	case <-handler.received:
		t.Fatal("message should not have been processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
