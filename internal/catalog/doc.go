// Package catalog is the data access API of the video catalog.
//
// A [Catalog] groups two services built over one [store.Store]:
//   - [VideoService] : existence check, create with playlist attachment, reads, update with association replacement, bulk delete
//   - [PlaylistService] : single and bulk create, reads, bulk rename, bulk delete
//
// Reads come in three shapes (one id, several ids, everything) through [models.Reader].
// Every read can load the associated rows on request.
//
// Multi-statement writes run in one transaction, so a failed attach or replace leaves no partial row behind.
package catalog
