// Package ui implements a read-only terminal browser for the catalog using bubbletea's Elm architecture.
//
// The TUI moves through three views:
//  1. [PlaylistListView] : Browse playlists with their video counts
//  2. [VideoListView] : Browse the videos of the selected playlist
//  3. [VideoDetailView] : Inspect one video
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving data via the [Msg] union type.
// Data is read through [models.Reader], so the browser never writes to the store.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
