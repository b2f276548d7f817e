package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
	th "github.com/desertthunder/vidshelf/internal/testing"
)

func samplePlaylist() *models.Playlist {
	first := th.SampleVideo("vid1")
	first.ID = 1
	first.Title = "Video One"
	first.Author = "Channel One"
	first.Length = 180
	first.Duration = "3:00"

	second := th.SampleVideo("vid2")
	second.ID = 2
	second.Title = "Video, Two"
	second.Author = "Channel Two"
	second.Length = 240
	second.Duration = "4:00"

	return &models.Playlist{
		ID:     7,
		Name:   "Test Playlist",
		Videos: []models.Video{*first, *second},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(samplePlaylist())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,VideoID,Title,Author,URL,Duration,Length") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,vid1,Video One,Channel One,https://www.youtube.com/watch?v=vid1,3:00,180") {
			t.Errorf("CSV missing first video, got: %s", output)
		}
		if !strings.Contains(output, `"Video, Two"`) {
			t.Errorf("CSV should quote titles containing commas, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("with videos", func(t *testing.T) {
			data, err := ExportToMarkdown(samplePlaylist())
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Test Playlist") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "![Cover](https://i.ytimg.com/vi/vid1/hqdefault.jpg)") {
				t.Errorf("Markdown missing cover from first thumbnail")
			}
			if !strings.Contains(output, "**Videos**: 2") {
				t.Errorf("Markdown missing video count")
			}
			if !strings.Contains(output, "**Total length**: 7:00") {
				t.Errorf("Markdown missing total length, got: %s", output)
			}
			if !strings.Contains(output, "1. [Video One](https://www.youtube.com/watch?v=vid1) - Channel One [3:00]") {
				t.Errorf("Markdown missing first video, got: %s", output)
			}
		})

		t.Run("empty playlist", func(t *testing.T) {
			data, err := ExportToMarkdown(&models.Playlist{ID: 1, Name: "Empty"})
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			if strings.Contains(output, "![Cover]") {
				t.Errorf("empty playlist should have no cover")
			}
			if !strings.Contains(output, "**Videos**: 0") {
				t.Errorf("Markdown missing zero count")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(samplePlaylist())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Test Playlist") {
			t.Errorf("Text missing playlist name")
		}
		if !strings.Contains(output, "Videos: 2") {
			t.Errorf("Text missing video count")
		}
		if !strings.Contains(output, "2. Channel Two - Video, Two (https://www.youtube.com/watch?v=vid2)") {
			t.Errorf("Text missing second video, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(samplePlaylist())
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if meta.ID != 7 || meta.Name != "Test Playlist" || meta.VideoCount != 2 || meta.TotalLength != 420 || meta.TotalDuration != "7:00" {
			t.Errorf("unexpected metadata %+v", meta)
		}
		if strings.Contains(string(data), "vid1") {
			t.Errorf("metadata should not include videos")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(samplePlaylist())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var got models.Playlist
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Name != "Test Playlist" || len(got.Videos) != 2 || got.Videos[0].VideoID != "vid1" {
			t.Errorf("unexpected export %+v", got)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{"csv", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"text", FormatText},
		{"txt", FormatText},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(samplePlaylist(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.VideosFile != "playlist_7_videos.csv" {
				t.Errorf("unexpected videos file %q", result.VideosFile)
			}
			if result.MetadataFile != "playlist_7_metadata.json" {
				t.Errorf("unexpected metadata file %q", result.MetadataFile)
			}

			th.AssertFileExists(t, result.VideosFile)
			th.AssertFileExists(t, result.MetadataFile)
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "custom")

			result, err := WriteCSVExport(samplePlaylist(), base)
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			content := th.MustReadFile(t, result.VideosFile)
			if !strings.Contains(content, "vid2") {
				t.Errorf("CSV file missing videos")
			}
		})

		t.Run("UnwritablePath", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "missing", "dir", "base")
			if _, err := WriteCSVExport(samplePlaylist(), base); err == nil {
				t.Error("expected error for missing directory")
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(samplePlaylist(), "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			th.AssertDirExists(t, "playlist_7")
			th.AssertFileExists(t, filepath.Join("playlist_7", "README.md"))
			if len(result.Files) != 1 {
				t.Errorf("expected 1 file, got %v", result.Files)
			}
		})

		t.Run("WithCustomDirectory", func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested", "export")

			result, err := WriteMarkdownExport(samplePlaylist(), dir)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			content := th.MustReadFile(t, result.Files[0])
			if !strings.Contains(content, "# Test Playlist") {
				t.Errorf("README missing title")
			}
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			path, err := WriteTextExport(samplePlaylist(), "")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}
			if path != "playlist_7_videos.txt" {
				t.Errorf("unexpected path %q", path)
			}
			th.AssertFileExists(t, path)
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "list.txt")

			if _, err := WriteTextExport(samplePlaylist(), path); err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}
			if !strings.Contains(th.MustReadFile(t, path), "Playlist: Test Playlist") {
				t.Errorf("text file missing header")
			}
		})
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "list.json")

		if _, err := WriteJSONExport(samplePlaylist(), path); err != nil {
			t.Fatalf("WriteJSONExport failed: %v", err)
		}
		if !strings.Contains(th.MustReadFile(t, path), `"video_id": "vid1"`) {
			t.Errorf("JSON file missing videos")
		}
	})

	t.Run("WriteExport", func(t *testing.T) {
		tests := []struct {
			format Format
			files  []string
		}{
			{FormatJSON, []string{"playlist_7.json"}},
			{FormatCSV, []string{"playlist_7_videos.csv", "playlist_7_metadata.json"}},
			{FormatMarkdown, []string{filepath.Join("playlist_7", "README.md")}},
			{FormatText, []string{"playlist_7_videos.txt"}},
		}

		for _, tt := range tests {
			t.Run(string(tt.format), func(t *testing.T) {
				dir := t.TempDir()

				files, err := WriteExport(samplePlaylist(), tt.format, dir)
				if err != nil {
					t.Fatalf("WriteExport failed: %v", err)
				}
				if len(files) != len(tt.files) {
					t.Fatalf("expected %v, got %v", tt.files, files)
				}
				for i, want := range tt.files {
					if files[i] != filepath.Join(dir, want) {
						t.Errorf("expected %s, got %s", filepath.Join(dir, want), files[i])
					}
					th.AssertFileExists(t, files[i])
				}
			})
		}
	})
}

func TestBulkExport(t *testing.T) {
	t.Run("exports every playlist and writes a manifest", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")

		playlists := []*models.Playlist{samplePlaylist(), {ID: 3, Name: "Empty"}}

		var seen int
		result, err := BulkExport(context.Background(), playlists, BulkExportOpts{
			Format:     FormatCSV,
			OutputDir:  dir,
			NumWorkers: 2,
			OnResult:   func(PlaylistExportResult) { seen++ },
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.TotalPlaylists != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected counts %+v", result)
		}
		if seen != 2 {
			t.Errorf("expected 2 callbacks, got %d", seen)
		}
		if result.Results[0].PlaylistID != 3 || result.Results[1].PlaylistID != 7 {
			t.Errorf("results should be sorted by id, got %+v", result.Results)
		}

		content := th.MustReadFile(t, result.ManifestPath)
		if !strings.Contains(content, `"format": "csv"`) {
			t.Errorf("Manifest missing format field")
		}
		if !strings.Contains(content, `"total_playlists": 2`) {
			t.Errorf("Manifest missing total_playlists field")
		}
		if !strings.Contains(content, `"status": "success"`) {
			t.Errorf("Manifest missing success status")
		}
	})

	t.Run("unwritable output directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := BulkExport(context.Background(), nil, BulkExportOpts{OutputDir: filepath.Join(blocker, "out")}); err == nil {
			t.Error("expected error creating output directory")
		}
	})
}

func TestWriteBulkExportManifest(t *testing.T) {
	t.Run("WithFailedExports", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")

		result := &BulkExportResult{
			TotalPlaylists:    2,
			SuccessfulExports: 1,
			FailedExports:     1,
			Results: []PlaylistExportResult{
				{PlaylistID: 1, PlaylistName: "Good", Success: true, Files: []string{"playlist_1.json"}},
				{PlaylistID: 2, PlaylistName: "Bad", Error: errors.New("disk full")},
			},
		}

		if err := WriteBulkExportManifest(result, FormatMarkdown, path); err != nil {
			t.Fatalf("WriteBulkExportManifest failed: %v", err)
		}

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, `"format": "markdown"`) {
			t.Errorf("Manifest missing format field")
		}
		if !strings.Contains(content, `"failed_exports": 1`) {
			t.Errorf("Manifest missing failed_exports count")
		}
		if !strings.Contains(content, `"status": "failed"`) {
			t.Errorf("Manifest missing failed status")
		}
		if !strings.Contains(content, `"disk full"`) {
			t.Errorf("Manifest missing error message")
		}
	})

	t.Run("UnwritablePath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "manifest.json")
		if err := WriteBulkExportManifest(&BulkExportResult{}, FormatJSON, path); err == nil {
			t.Error("expected write error")
		}
	})
}
