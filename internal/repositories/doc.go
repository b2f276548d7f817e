// Package repositories implements SQLite persistence for the catalog entities.
//
// Each repository handles the queries for one table and can be bound to a transaction with WithTx,
// so multi-statement operations in the catalog commit or roll back together.
//
// Key Implementations:
//   - [VideoRepository] : Video rows with video_id lookups
//   - [PlaylistRepository] : Playlist rows with bulk creation and bulk rename
//   - [PlaylistVideoRepository] : Junction table linking videos to playlists
//
// UNIQUE constraint failures are reported as [shared.ErrDuplicate] so callers never inspect driver errors.
package repositories
