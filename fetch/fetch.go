package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/firefly-engine/firefly/fs"
)

// Downloader fetches a remote file to a path on the wizard's file system.
type Downloader interface {
	Download(ctx context.Context, url string, dest string) error
}

// HTTPDownloader downloads archives over HTTP, reporting progress as a ratio
// in [0, 1] when the server advertises a content length.
type HTTPDownloader struct {
	Client     *http.Client
	FS         *fs.FileSystem
	OnProgress func(ratio float64)
}

func NewHTTPDownloader(fsys *fs.FileSystem) *HTTPDownloader {
	return &HTTPDownloader{
		Client: &http.Client{
			Timeout: 30 * time.Minute,
		},
		FS: fsys,
	}
}

func (d *HTTPDownloader) Download(ctx context.Context, url string, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	file, err := d.FS.Create(dest)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	pw := &progressWriter{
		total:      int(resp.ContentLength),
		onProgress: d.OnProgress,
	}
	if _, err := io.Copy(file, io.TeeReader(resp.Body, pw)); err != nil {
		return fmt.Errorf("error writing %s: %w", dest, err)
	}
	return nil
}

// progressWriter counts bytes as they stream through the TeeReader.
type progressWriter struct {
	total      int
	downloaded int
	onProgress func(float64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	pw.downloaded += len(p)
	if pw.total > 0 && pw.onProgress != nil {
		pw.onProgress(float64(pw.downloaded) / float64(pw.total))
	}
	return len(p), nil
}
