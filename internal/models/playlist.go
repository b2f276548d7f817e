package models

// Playlist is a named collection of videos.
//
// Videos stays nil unless a read asks for associations.
type Playlist struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Videos []Video `json:"Videos"`
}

var _ Model = (*Playlist)(nil)

func (p *Playlist) Key() int64 { return p.ID }

// Validate checks that the playlist has a name.
func (p *Playlist) Validate() error {
	return requireText("name", p.Name)
}
