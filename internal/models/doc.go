// Package models defines the catalog entities and the read capability shared by the access layer.
//
// Entities:
//   - [Video] : A cataloged video, deduplicated by its external VideoID
//   - [Playlist] : A uniquely named collection of videos
//   - [PlaylistVideo] : One row of the association between the two
//
// [VideoPatch] carries a partial update for a video; nil fields are left untouched.
//
// [Reader] is the read capability implemented by the catalog services.
// Callers choose between fetching one row, several rows by id, or every row instead of passing a polymorphic id.
package models
