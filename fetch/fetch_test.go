package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/firefly-engine/firefly/fs"
)

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("archive-bytes"))
	}))
	defer server.Close()

	memFS := fs.NewMemoryFileSystem()
	var lastRatio float64
	d := NewHTTPDownloader(memFS)
	d.OnProgress = func(ratio float64) { lastRatio = ratio }

	err := d.Download(context.Background(), server.URL, "/downloads/sdk.tar.gz")
	assert.NoError(t, err)

	content, err := memFS.ReadFile("/downloads/sdk.tar.gz")
	assert.NoError(t, err)
	assert.Equal(t, "archive-bytes", content)
	assert.InDelta(t, 1.0, lastRatio, 0.001)
}

func TestDownload_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := NewHTTPDownloader(fs.NewMemoryFileSystem())
	err := d.Download(context.Background(), server.URL, "/downloads/sdk.tar.gz")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}

func TestDownload_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewHTTPDownloader(fs.NewMemoryFileSystem())
	err := d.Download(ctx, server.URL, "/downloads/sdk.tar.gz")
	assert.Error(t, err)
}
