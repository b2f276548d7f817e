package models

import (
	"fmt"

	"github.com/desertthunder/vidshelf/internal/shared"
)

// Video is a cataloged video entry.
//
// Playlists stays nil unless a read asks for associations.
type Video struct {
	ID        int64      `json:"id"`
	VideoID   string     `json:"video_id"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Thumbnail string     `json:"thumbnail"`
	Duration  string     `json:"duration"`
	Length    int        `json:"length"`
	Playlists []Playlist `json:"Playlists"`
}

var _ Model = (*Video)(nil)

func (v *Video) Key() int64 { return v.ID }

// Validate checks that every required column is set.
func (v *Video) Validate() error {
	checks := []struct{ field, value string }{
		{"video_id", v.VideoID},
		{"url", v.URL},
		{"title", v.Title},
		{"author", v.Author},
		{"thumbnail", v.Thumbnail},
		{"duration", v.Duration},
	}
	for _, c := range checks {
		if err := requireText(c.field, c.value); err != nil {
			return err
		}
	}

	if v.Length < 0 {
		return fmt.Errorf("%w: length must not be negative, got %d", shared.ErrInvalidArgument, v.Length)
	}
	return nil
}

// PlaylistIDs returns the ids of the loaded playlists in order.
func (v *Video) PlaylistIDs() []int64 {
	ids := make([]int64, 0, len(v.Playlists))
	for _, p := range v.Playlists {
		ids = append(ids, p.ID)
	}
	return ids
}

// VideoPatch holds the fields of an in-place video update.
// The id is immutable and has no field here.
type VideoPatch struct {
	VideoID   *string `json:"video_id,omitempty"`
	URL       *string `json:"url,omitempty"`
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
	Duration  *string `json:"duration,omitempty"`
	Length    *int    `json:"length,omitempty"`
}

// Apply copies every non-nil field of the patch onto v.
func (p *VideoPatch) Apply(v *Video) {
	if p == nil {
		return
	}
	if p.VideoID != nil {
		v.VideoID = *p.VideoID
	}
	if p.URL != nil {
		v.URL = *p.URL
	}
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Author != nil {
		v.Author = *p.Author
	}
	if p.Thumbnail != nil {
		v.Thumbnail = *p.Thumbnail
	}
	if p.Duration != nil {
		v.Duration = *p.Duration
	}
	if p.Length != nil {
		v.Length = *p.Length
	}
}

// Empty reports whether the patch changes nothing.
func (p *VideoPatch) Empty() bool {
	return p == nil || (p.VideoID == nil && p.URL == nil && p.Title == nil && p.Author == nil &&
		p.Thumbnail == nil && p.Duration == nil && p.Length == nil)
}
