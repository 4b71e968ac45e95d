package dreamina

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FilePrefix is the leading part of every downloaded filename.
	FilePrefix = "dreamina"

	// DefaultExtension is used when the URL says nothing about the format.
	DefaultExtension = "jpg"

	downloadChunkSize = 8192
)

// formatMarkers map query markers the image CDN puts in signed URLs to file
// extensions. Checked in order, before the URL path.
var formatMarkers = []struct {
	marker string
	ext    string
}{
	{"format=.jpeg", "jpg"},
	{"format=.jpg", "jpg"},
	{"format=.png", "png"},
	{"format=.webp", "webp"},
}

// ExtensionFromURL infers the file extension of an image URL: a format=
// marker wins, then the suffix of the path, then DefaultExtension.
func ExtensionFromURL(rawURL string) string {
	for _, m := range formatMarkers {
		if strings.Contains(rawURL, m.marker) {
			return m.ext
		}
	}
	if ext := pathSuffix(rawURL); ext != "" {
		return ext
	}
	return DefaultExtension
}

// pathSuffix returns the extension of the last path element without the
// dot. Dotfiles and names ending in a dot have none.
func pathSuffix(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

// Filename returns the local filename for the image at index downloaded at t.
func Filename(t time.Time, index int, ext string) string {
	return fmt.Sprintf("%s_%d_%02d.%s", FilePrefix, t.Unix(), index, ext)
}

// Download fetches one image into dir. The body is streamed to disk in
// fixed-size chunks; a failed download leaves no file behind.
func (c *Client) Download(ctx context.Context, rawURL, dir string, index int) (*Artifact, error) {
	ext := ExtensionFromURL(rawURL)
	dst := filepath.Join(dir, Filename(c.config.now(), index, ext))

	ctx, cancel := context.WithTimeout(ctx, c.config.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.config.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyRunes*4))
		return nil, newError(resp.StatusCode, body, "")
	}

	size, err := streamToFile(dst, resp.Body)
	if err != nil {
		return nil, err
	}

	c.config.logger.Debug("dreamina: downloaded image", "index", index, "path", dst, "bytes", size)

	return &Artifact{
		Index: index,
		URL:   rawURL,
		Path:  dst,
		Size:  size,
		Ext:   ext,
	}, nil
}

func streamToFile(dst string, r io.Reader) (int64, error) {
	f, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	var written int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				err = fmt.Errorf("write file: %w", werr)
				break
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			err = fmt.Errorf("read body: %w", rerr)
			break
		}
	}

	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close file: %w", cerr)
	}
	if err != nil {
		os.Remove(dst)
		return 0, err
	}
	return written, nil
}

// DownloadResult is the outcome of one download in a batch.
type DownloadResult struct {
	Index    int
	URL      string
	Artifact *Artifact
	Err      error
}

// DownloadHooks observe a batch download. Either hook may be nil.
type DownloadHooks struct {
	OnStart func(index int, url string)
	OnDone  func(DownloadResult)
}

// DownloadAll downloads urls one after another into dir and returns the
// artifacts that succeeded, in order. A failed download is reported through
// hooks and skipped; it never stops the batch. Cancelling ctx does.
func (c *Client) DownloadAll(ctx context.Context, urls []string, dir string, hooks DownloadHooks) []Artifact {
	artifacts := make([]Artifact, 0, len(urls))
	for i, u := range urls {
		if ctx.Err() != nil {
			break
		}
		if hooks.OnStart != nil {
			hooks.OnStart(i, u)
		}

		art, err := c.Download(ctx, u, dir, i)
		if err == nil {
			artifacts = append(artifacts, *art)
		}

		if hooks.OnDone != nil {
			hooks.OnDone(DownloadResult{Index: i, URL: u, Artifact: art, Err: err})
		}
	}
	return artifacts
}
