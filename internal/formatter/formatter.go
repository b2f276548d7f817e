// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// ParseFormat accepts a format name and its common aliases.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// Metadata summarizes a playlist without its videos.
type Metadata struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	VideoCount    int    `json:"video_count"`
	TotalLength   int    `json:"total_length"`
	TotalDuration string `json:"total_duration"`
}

// NewMetadata summarizes playlist from its loaded videos.
func NewMetadata(playlist *models.Playlist) Metadata {
	total := 0
	for _, v := range playlist.Videos {
		total += v.Length
	}
	return Metadata{
		ID:            playlist.ID,
		Name:          playlist.Name,
		VideoCount:    len(playlist.Videos),
		TotalLength:   total,
		TotalDuration: shared.FormatDuration(total),
	}
}

// baseName is the default file name stem for a playlist export.
func baseName(playlist *models.Playlist) string {
	return fmt.Sprintf("playlist_%d", playlist.ID)
}

// ExportToCSV converts a playlist's videos to CSV format with columns: ID, VideoID, Title, Author, URL, Duration, Length
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "VideoID", "Title", "Author", "URL", "Duration", "Length"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range playlist.Videos {
		record := []string{
			strconv.FormatInt(video.ID, 10),
			video.VideoID,
			video.Title,
			video.Author,
			video.URL,
			video.Duration,
			strconv.Itoa(video.Length),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown, using the first video's thumbnail as the cover.
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	meta := NewMetadata(playlist)

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))

	if len(playlist.Videos) > 0 && playlist.Videos[0].Thumbnail != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", playlist.Videos[0].Thumbnail))
	}

	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", meta.VideoCount))
	buf.WriteString(fmt.Sprintf("**Total length**: %s\n\n", meta.TotalDuration))

	buf.WriteString("## Videos\n\n")
	for i, video := range playlist.Videos {
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) - %s [%s]\n", i+1, video.Title, video.URL, video.Author, video.Duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("Videos: %d\n\n", len(playlist.Videos)))

	for i, video := range playlist.Videos {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, video.Author, video.Title, video.URL))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a playlist with its videos to indented JSON.
func ExportToJSON(playlist *models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(playlist, true)
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without videos)
func ToMetadataJSON(playlist *models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(NewMetadata(playlist), true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	VideosFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist_{id} as the base filename & creates {base}_videos.csv and {base}_metadata.json
func WriteCSVExport(playlist *models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = baseName(playlist)
	}

	csvData, err := ExportToCSV(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	videosFile := baseFilepath + "_videos.csv"
	if err := os.WriteFile(videosFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		VideosFile:   videosFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a playlist to Markdown format in a dedicated directory.
//
// Directory name defaults to playlist_{id}. Creates {dir}/README.md.
func WriteMarkdownExport(playlist *models.Playlist, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = baseName(playlist)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return &MarkdownExportResult{Directory: outputDir, Files: []string{mdFile}}, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to playlist_{id}_videos.txt as the filename.
func WriteTextExport(playlist *models.Playlist, path string) (string, error) {
	if path == "" {
		path = baseName(playlist) + "_videos.txt"
	}

	textData, err := ExportToText(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports a playlist with its videos to a JSON file.
//
// Defaults to playlist_{id}.json as the filename.
func WriteJSONExport(playlist *models.Playlist, path string) (string, error) {
	if path == "" {
		path = baseName(playlist) + ".json"
	}

	data, err := ExportToJSON(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// WriteExport writes playlist in format under dir and returns the created files.
func WriteExport(playlist *models.Playlist, format Format, dir string) ([]string, error) {
	base := filepath.Join(dir, baseName(playlist))

	switch format {
	case FormatCSV:
		res, err := WriteCSVExport(playlist, base)
		if err != nil {
			return nil, err
		}
		return []string{res.VideosFile, res.MetadataFile}, nil
	case FormatMarkdown:
		res, err := WriteMarkdownExport(playlist, base)
		if err != nil {
			return nil, err
		}
		return res.Files, nil
	case FormatText:
		path, err := WriteTextExport(playlist, base+"_videos.txt")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		path, err := WriteJSONExport(playlist, base+".json")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}
