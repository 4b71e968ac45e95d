package dreamina

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExtensionFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/img/abc.webp?x-signature=1&format=.png", "png"},
		{"https://cdn.example.com/img/abc~tplv.image?format=.jpeg", "jpg"},
		{"https://cdn.example.com/img/abc.png?format=.jpg", "jpg"},
		{"https://cdn.example.com/img/abc.jpeg?format=.webp", "webp"},
		{"https://cdn.example.com/x/y.webp", "webp"},
		{"https://cdn.example.com/x/y.PNG?sig=abc", "PNG"},
		{"https://cdn.example.com/x/y.tar.gz", "gz"},
		{"https://cdn.example.com/x/y", "jpg"},
		{"https://cdn.example.com/x/.hidden", "jpg"},
		{"https://cdn.example.com/x/y.", "jpg"},
		{"https://cdn.example.com/", "jpg"},
		{"", "jpg"},
		{"://bad url", "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ExtensionFromURL(tt.url); got != tt.want {
				t.Errorf("ExtensionFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	ts := time.Unix(1700000000, 0)

	a := Filename(ts, 0, "png")
	b := Filename(ts, 1, "png")

	if a != "dreamina_1700000000_00.png" {
		t.Errorf("Filename(0) = %q", a)
	}
	if b != "dreamina_1700000000_01.png" {
		t.Errorf("Filename(1) = %q", b)
	}
	if strings.TrimSuffix(a, "00.png") != strings.TrimSuffix(b, "01.png") {
		t.Errorf("filenames %q and %q should differ only by index", a, b)
	}
	if got := Filename(ts, 12, "jpg"); got != "dreamina_1700000000_12.jpg" {
		t.Errorf("Filename(12) = %q", got)
	}
}

func fixedClock() func() time.Time {
	ts := time.Unix(1700000000, 0)
	return func() time.Time { return ts }
}

func TestDownload(t *testing.T) {
	payload := bytes.Repeat([]byte("imagebytes"), 5000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("downloads must not forward the session token")
		}
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := NewClient("secret", WithClock(fixedClock()))

	art, err := client.Download(context.Background(), srv.URL+"/img/cat.webp", dir, 3)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}

	wantPath := filepath.Join(dir, "dreamina_1700000000_03.webp")
	if art.Path != wantPath {
		t.Errorf("Path = %q, want %q", art.Path, wantPath)
	}
	if art.Ext != "webp" {
		t.Errorf("Ext = %q, want webp", art.Ext)
	}
	if art.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", art.Size, len(payload))
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("file content does not match payload")
	}
}

func TestDownload_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := NewClient("t", WithClock(fixedClock()))

	if _, err := client.Download(context.Background(), srv.URL+"/a.png", dir, 0); err == nil {
		t.Fatal("expected error for 404")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no files, got %d", len(entries))
	}
}

func TestDownload_TruncatedBodyRemovesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100000")
		w.Write([]byte("partial"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := NewClient("t", WithClock(fixedClock()))

	if _, err := client.Download(context.Background(), srv.URL+"/a.png", dir, 0); err == nil {
		t.Fatal("expected error for truncated body")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("partial file should be removed, found %d entries", len(entries))
	}
}

func TestDownload_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient("t", WithDownloadTimeout(50*time.Millisecond))
	_, err := client.Download(context.Background(), srv.URL+"/a.png", t.TempDir(), 0)
	if !IsTimeout(err) {
		t.Fatalf("IsTimeout(%v) = false, want true", err)
	}
}

func TestDownloadAll_ContinuesAfterFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.png" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	urls := []string{srv.URL + "/a.png", srv.URL + "/broken.png", srv.URL + "/c.jpg"}
	client := NewClient("t", WithClock(fixedClock()))

	var started []int
	var failed []int
	arts := client.DownloadAll(context.Background(), urls, t.TempDir(), DownloadHooks{
		OnStart: func(i int, _ string) { started = append(started, i) },
		OnDone: func(r DownloadResult) {
			if r.Err != nil {
				failed = append(failed, r.Index)
			}
		},
	})

	if len(arts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(arts))
	}
	if arts[0].Index != 0 || arts[1].Index != 2 {
		t.Errorf("artifact indexes = %d,%d, want 0,2", arts[0].Index, arts[1].Index)
	}
	if len(started) != 3 {
		t.Errorf("started = %v, want 3 entries", started)
	}
	if len(failed) != 1 || failed[0] != 1 {
		t.Errorf("failed = %v, want [1]", failed)
	}
}

func TestDownloadAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("t")
	arts := client.DownloadAll(ctx, []string{"http://127.0.0.1:1/a.png"}, t.TempDir(), DownloadHooks{
		OnStart: func(int, string) { t.Error("no download should start after cancel") },
	})
	if len(arts) != 0 {
		t.Errorf("len(artifacts) = %d, want 0", len(arts))
	}
}
