package hf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedImage(t *testing.T) {
	t.Run("bare array response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`[0.1, 0.2, 0.3]`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		embedding, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding)
	})

	t.Run("wrapped response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"embedding": [1, 2]}`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		embedding, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, embedding)
	})

	t.Run("model loading retries once", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`[0.5]`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		embedding, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5}, embedding)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("persistent 503 is an API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("still loading"))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	})

	t.Run("non-2xx carries status and message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("bad image"))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Contains(t, apiErr.Message, "bad image")
	})

	t.Run("malformed response shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"surprise": true}`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Contains(t, apiErr.Message, "unexpected response format")
	})

	t.Run("token is sent when configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer hf_secret", r.Header.Get("Authorization"))
			w.Write([]byte(`[0.5]`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL), WithToken("hf_secret"))
		_, err := client.EmbedImage(context.Background(), strings.NewReader("imagebytes"))
		require.NoError(t, err)
	})
}

func TestEmbedImageURL(t *testing.T) {
	t.Run("fetches image then embeds", func(t *testing.T) {
		imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpegbytes"))
		}))
		defer imageServer.Close()

		var received []byte
		embedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := make([]byte, r.ContentLength)
			r.Body.Read(body)
			received = body
			w.Write([]byte(`[0.9]`))
		}))
		defer embedServer.Close()

		client := NewClient(WithBaseURL(embedServer.URL))
		embedding, err := client.EmbedImageURL(context.Background(), imageServer.URL+"/bottle.jpg")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.9}, embedding)
		assert.Equal(t, "jpegbytes", string(received))
	})

	t.Run("image fetch failure", func(t *testing.T) {
		imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer imageServer.Close()

		client := NewClient()
		_, err := client.EmbedImageURL(context.Background(), imageServer.URL+"/gone.jpg")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}
