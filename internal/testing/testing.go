// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/vidshelf/internal/catalog"
	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
	"github.com/desertthunder/vidshelf/internal/store"
)

// MustOpenCatalog opens an in-memory store with the schema applied and returns a [catalog.Catalog] over it.
//
// The store is closed when the test ends.
func MustOpenCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	logger := shared.NewLogger(&bytes.Buffer{})
	st, err := store.Open(context.Background(), shared.DatabaseConfig{Path: shared.MemoryPath}, logger)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return catalog.New(st, logger)
}

// SampleVideo returns a valid video keyed by videoID.
func SampleVideo(videoID string) *models.Video {
	return &models.Video{
		VideoID:   videoID,
		URL:       "https://www.youtube.com/watch?v=" + videoID,
		Title:     "Title " + videoID,
		Author:    "Author " + videoID,
		Thumbnail: "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg",
		Duration:  "3:25",
		Length:    205,
	}
}

// MustSeed creates the named playlists and one video per videoID linked to all of them.
func MustSeed(t *testing.T, c *catalog.Catalog, playlists []string, videoIDs ...string) {
	t.Helper()
	ctx := context.Background()

	created, err := c.Playlists.CreateMany(ctx, playlists)
	if err != nil {
		t.Fatalf("Failed to create playlists: %v", err)
	}

	ids := make([]int64, len(created))
	for i, p := range created {
		ids[i] = p.ID
	}

	for _, videoID := range videoIDs {
		if _, err := c.Videos.Create(ctx, SampleVideo(videoID), ids...); err != nil {
			t.Fatalf("Failed to create video %s: %v", videoID, err)
		}
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
