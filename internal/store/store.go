// package store owns the catalog database handle and the repositories bound to it.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidshelf/internal/repositories"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// Store is an open catalog database with its repositories.
//
// A Store is safe for concurrent use. Build one with [Open] and pass it to whatever needs it.
type Store struct {
	db     *sql.DB
	logger *log.Logger

	Videos    *repositories.VideoRepository
	Playlists *repositories.PlaylistRepository
	Links     *repositories.PlaylistVideoRepository
}

// Tx exposes the repositories bound to one transaction.
type Tx struct {
	Videos    *repositories.VideoRepository
	Playlists *repositories.PlaylistRepository
	Links     *repositories.PlaylistVideoRepository
}

// Open connects to the database described by cfg and synchronizes the schema.
//
// The parent directory of the file is created when missing. With cfg.ForceSync every table is dropped first.
func Open(ctx context.Context, cfg shared.DatabaseConfig, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := shared.NewDatabase(cfg.Path, cfg.BusyTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	if cfg.Path != shared.MemoryPath {
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	if cfg.ForceSync {
		logger.Warn("dropping catalog tables", "path", cfg.Path)
		if err := shared.DropSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := shared.SyncSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to synchronize schema: %w", err)
	}

	logger.Debug("store opened", "path", cfg.Path)
	return New(db, logger), nil
}

// New wraps an already prepared database handle.
func New(db *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		db:        db,
		logger:    logger,
		Videos:    repositories.NewVideoRepository(db),
		Playlists: repositories.NewPlaylistRepository(db),
		Links:     repositories.NewPlaylistVideoRepository(db),
	}
}

// InTx runs fn in one transaction. The transaction commits when fn returns nil and rolls back otherwise.
//
// fn must only use the repositories of the [Tx] it receives.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	return repositories.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&Tx{
			Videos:    s.Videos.WithTx(tx),
			Playlists: s.Playlists.WithTx(tx),
			Links:     s.Links.WithTx(tx),
		})
	})
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Logger returns the logger the store was opened with.
func (s *Store) Logger() *log.Logger { return s.logger }

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
