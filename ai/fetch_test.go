package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	t.Run("returns body bytes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("image-bytes"))
		}))
		defer srv.Close()

		f := NewImageFetcher(time.Second)
		data, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
	})

	t.Run("empty url", func(t *testing.T) {
		f := NewImageFetcher(time.Second)
		_, err := f.Fetch(context.Background(), "")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewImageFetcher(time.Second)
		_, err := f.Fetch(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("unreachable host", func(t *testing.T) {
		f := NewImageFetcher(100 * time.Millisecond)
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/missing.jpg")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := NewImageFetcher(time.Second)
		_, err := f.Fetch(ctx, srv.URL)
		assert.Error(t, err)
	})
}
