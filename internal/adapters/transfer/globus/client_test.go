package globus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/transfer/globus"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGlobus emulates the auth and transfer endpoints used by the client.
type fakeGlobus struct {
	tokenCalls      atomic.Int64
	shareCalls      atomic.Int64
	activateCalls   atomic.Int64
	rejectFirstUse  atomic.Bool
	requireActivate atomic.Bool
}

func (f *fakeGlobus) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v2/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "access-token", "expires_in": 3600})
	})

	mux.HandleFunc("POST /v0.10/shared_endpoint", func(w http.ResponseWriter, r *http.Request) {
		f.shareCalls.Add(1)
		if f.rejectFirstUse.CompareAndSwap(true, false) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"code": "AuthenticationFailed", "message": "token expired"})
			return
		}
		if f.requireActivate.Load() {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"code": "ClientError.ActivationRequired", "message": "activate first"})
			return
		}

		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["host_path"] == "" || payload["host_endpoint"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"code": "ClientError.BadRequest", "message": "missing host path"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "ep-new"})
	})

	mux.HandleFunc("POST /v0.10/endpoint/host-ep/autoactivate", func(w http.ResponseWriter, r *http.Request) {
		f.activateCalls.Add(1)
		f.requireActivate.Store(false)
		json.NewEncoder(w).Encode(map[string]string{"code": "AutoActivated.CachedCredential"})
	})

	mux.HandleFunc("DELETE /v0.10/endpoint/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"code": "Deleted"})
	})

	mux.HandleFunc("POST /v0.10/endpoint/ep-new/access", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"code": "Created"})
	})

	return mux
}

func newTestClient(t *testing.T) (port.TransferClient, *fakeGlobus) {
	t.Helper()

	fake := &fakeGlobus{}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	client := globus.NewClient(config.GlobusConfig{
		AuthURL:              server.URL,
		TransferURL:          server.URL,
		ClientID:             "client-id",
		ClientSecret:         "client-secret",
		TransferRefreshToken: "refresh-token",
		HostEndpointID:       "host-ep",
		RequestTimeout:       5 * time.Second,
	})

	return client, fake
}

func TestClient_CreateShare(t *testing.T) {
	// Arrange
	client, fake := newTestClient(t)

	// Act
	endpointID, err := client.CreateShare(context.Background(), "/uploads/usr-ana/", "share", "description")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ep-new", endpointID)
	assert.Equal(t, int64(1), fake.tokenCalls.Load())
}

func TestClient_CreateShare_ReusesAccessToken(t *testing.T) {
	// Arrange
	client, fake := newTestClient(t)

	// Act
	_, err := client.CreateShare(context.Background(), "/uploads/usr-ana/", "share", "description")
	require.NoError(t, err)
	_, err = client.CreateShare(context.Background(), "/uploads/usr-ana/", "share", "description")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), fake.tokenCalls.Load())
}

func TestClient_CreateShare_RetriesOnceOnRejectedToken(t *testing.T) {
	// Arrange
	client, fake := newTestClient(t)
	fake.rejectFirstUse.Store(true)

	// Act
	endpointID, err := client.CreateShare(context.Background(), "/uploads/usr-ana/", "share", "description")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ep-new", endpointID)
	assert.Equal(t, int64(2), fake.tokenCalls.Load())
	assert.Equal(t, int64(2), fake.shareCalls.Load())
}

func TestClient_CreateShare_ActivatesDormantHostEndpoint(t *testing.T) {
	// Arrange
	client, fake := newTestClient(t)
	fake.requireActivate.Store(true)

	// Act
	endpointID, err := client.CreateShare(context.Background(), "/uploads/usr-ana/", "share", "description")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ep-new", endpointID)
	assert.Equal(t, int64(1), fake.activateCalls.Load())
}

func TestClient_DeleteEndpoint(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t)

	// Act
	err := client.DeleteEndpoint(context.Background(), "ep-old")

	// Assert
	assert.NoError(t, err)
}

func TestClient_AddAllAuthenticatedUsersACL(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t)

	// Act
	err := client.AddAllAuthenticatedUsersACL(context.Background(), "ep-new")

	// Assert
	assert.NoError(t, err)
}

func TestClient_TransferAPIFailure(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t)

	// Act: empty host path makes the fake reject the request.
	_, err := client.CreateShare(context.Background(), "", "share", "description")

	// Assert
	assert.ErrorIs(t, err, domain.ErrExternalAPI)
}
