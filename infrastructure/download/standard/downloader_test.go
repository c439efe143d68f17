// ABOUTME: Tests for the HTTP downloader using httptest servers
// ABOUTME: Covers success, retry on 5xx, status categorization and scheme rejection

package standard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aggregator-core/core/interfaces"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func newTestDownloader() *Downloader {
	return NewDownloader(Config{Timeout: 5 * time.Second}, nopLogger{})
}

func delegate(t *testing.T, d *Downloader, url, dest string) *interfaces.DownloadError {
	t.Helper()
	result, err := d.Delegate(context.Background(), interfaces.DownloadRequest{URL: url, DestPath: dest})
	require.NoError(t, err)
	select {
	case derr := <-result:
		return derr
	case <-time.After(10 * time.Second):
		t.Fatal("download did not finish")
		return nil
	}
}

func TestDownloadWritesBodyToDestPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "feed.xml")
	derr := delegate(t, newTestDownloader(), server.URL, dest)
	require.Nil(t, derr)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("<rss/>"), data)
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "feed.xml")
	derr := delegate(t, newTestDownloader(), server.URL, dest)
	require.Nil(t, derr)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDownloadGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "feed.xml")
	derr := delegate(t, newTestDownloader(), server.URL, dest)
	require.NotNil(t, derr)
	assert.Equal(t, interfaces.CategoryUnknown, derr.Category)
	assert.Equal(t, int32(maxRetries), calls.Load())
}

func TestStatusCategorization(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   interfaces.ErrorCategory
	}{
		{name: "not found", status: http.StatusNotFound, want: interfaces.CategoryNotFound},
		{name: "gone", status: http.StatusGone, want: interfaces.CategoryNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, want: interfaces.CategoryAccessDenied},
		{name: "forbidden", status: http.StatusForbidden, want: interfaces.CategoryAccessDenied},
		{name: "teapot", status: http.StatusTeapot, want: interfaces.CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			dest := filepath.Join(t.TempDir(), "feed.xml")
			derr := delegate(t, newTestDownloader(), server.URL, dest)
			require.NotNil(t, derr)
			assert.Equal(t, tt.want, derr.Category)
		})
	}
}

func TestUnsupportedSchemeIsNoHandler(t *testing.T) {
	d := newTestDownloader()
	_, err := d.Delegate(context.Background(), interfaces.DownloadRequest{
		URL:      "ftp://example.com/feed.xml",
		DestPath: filepath.Join(t.TempDir(), "feed.xml"),
	})
	assert.ErrorIs(t, err, interfaces.ErrNoHandler)
}

func TestUnwritableDestPathIsLocalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	derr := delegate(t, newTestDownloader(), server.URL, filepath.Join(t.TempDir(), "missing", "feed.xml"))
	require.NotNil(t, derr)
	assert.Equal(t, interfaces.CategoryLocalError, derr.Category)
}

func TestCanceledContextIsUserCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	d := newTestDownloader()
	result, err := d.Delegate(ctx, interfaces.DownloadRequest{
		URL:      server.URL,
		DestPath: filepath.Join(t.TempDir(), "feed.xml"),
	})
	require.NoError(t, err)
	cancel()

	select {
	case derr := <-result:
		require.NotNil(t, derr)
		assert.Equal(t, interfaces.CategoryUserCanceled, derr.Category)
	case <-time.After(10 * time.Second):
		t.Fatal("download did not finish")
	}
}
