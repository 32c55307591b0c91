package catapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/gatos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "failed to load fixture %s", name)
	return data
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/v1/", "", slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	client.httpClient = server.Client()
	client.retryDelay = time.Millisecond
	return client
}

func TestClient_Search(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	tests := []struct {
		name       string
		response   []byte
		statusCode int
		wantIDs    []string
		wantErr    error
	}{
		{
			name:       "successful search",
			response:   fixture,
			statusCode: http.StatusOK,
			wantIDs:    []string{"a1b", "MTY3ODIyMQ", "9ho"},
		},
		{
			name:       "empty results",
			response:   []byte(`[]`),
			statusCode: http.StatusOK,
			wantIDs:    []string{},
		},
		{
			name:       "malformed payload",
			response:   []byte(`{"not": "an array"}`),
			statusCode: http.StatusOK,
			wantErr:    domain.ErrMalformedResponse,
		},
		{
			name:       "truncated json",
			response:   []byte(`[{"id": "a"`),
			statusCode: http.StatusOK,
			wantErr:    domain.ErrMalformedResponse,
		},
		{
			name:       "unauthorized",
			response:   []byte(`{"message": "invalid api key", "status": 401}`),
			statusCode: http.StatusUnauthorized,
			wantErr:    domain.ErrUnexpectedStatus,
		},
		{
			name:       "server error",
			statusCode: http.StatusBadGateway,
			wantErr:    domain.ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.response != nil {
					w.Write(tt.response)
				}
			})

			images, err := client.Search(context.Background(), 10)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrFetchFailed)
				return
			}

			require.NoError(t, err)
			ids := make([]string, len(images))
			for i, img := range images {
				ids[i] = img.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestClient_Search_Request(t *testing.T) {
	var gotPath, gotLimit, gotKey, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotKey = r.Header.Get("x-api-key")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	})
	client.apiKey = "live_key"

	_, err := client.Search(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, "/v1/images/search", gotPath)
	assert.Equal(t, "10", gotLimit)
	assert.Equal(t, "live_key", gotKey)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_Search_NoKeyHeaderWhenUnset(t *testing.T) {
	var present bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["X-Api-Key"]
		w.Write([]byte(`[]`))
	})

	_, err := client.Search(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestClient_Search_MapsBreedsAndSize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(loadFixture(t, "search_response.json"))
	})

	images, err := client.Search(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, images, 3)

	assert.Equal(t, "1080x720", images[0].Dimensions())
	assert.Empty(t, images[0].Breeds)
	assert.Equal(t, []string{"Bengal"}, images[1].Breeds)
	assert.Equal(t, "MTY3ODIyMQ Bengal", images[1].Label())
	assert.Equal(t, "", images[2].Dimensions())
}

func TestClient_Search_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"id": "ok", "url": "https://cdn.example.com/ok.jpg"}]`))
	})

	images, err := client.Search(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, images, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Search_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.Equal(t, int32(maxRetries+1), calls.Load())
}

func TestClient_Search_Offline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(server.URL, "", nil)
	_, err := client.Search(context.Background(), 10)

	assert.ErrorIs(t, err, domain.ErrSourceOffline)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Search_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Search_InvalidLimit(t *testing.T) {
	client := NewClient("http://unused", "", nil)
	_, err := client.Search(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}
