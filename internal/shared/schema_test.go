package shared

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("schemaStatements", func(t *testing.T) {
		statements := schemaStatements(schemaSQL)
		if len(statements) == 0 {
			t.Fatal("expected at least one schema statement")
		}

		for _, stmt := range statements {
			if strings.Contains(stmt, "--") {
				t.Errorf("statement still contains a comment: %s", stmt)
			}
			if !strings.HasPrefix(stmt, "CREATE") {
				t.Errorf("expected only CREATE statements, got %s", stmt)
			}
		}
	})

	t.Run("SyncSchema", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := SyncSchema(ctx, db); err != nil {
			t.Fatalf("failed to sync schema: %v", err)
		}

		for _, table := range Tables {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after sync: %v", table, err)
			}
		}
	})

	t.Run("Idempotent Sync", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := SyncSchema(ctx, db); err != nil {
			t.Fatalf("failed to sync schema first time: %v", err)
		}

		if _, err := db.Exec("INSERT INTO playlists (name) VALUES ('kept')"); err != nil {
			t.Fatalf("failed to insert playlist: %v", err)
		}

		if err := SyncSchema(ctx, db); err != nil {
			t.Fatalf("failed to sync schema second time: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM playlists").Scan(&count); err != nil {
			t.Fatalf("failed to count playlists: %v", err)
		}
		if count != 1 {
			t.Errorf("expected existing rows to survive a second sync, got %d", count)
		}
	})

	t.Run("Link Pair Is Inert On Repeat", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := SyncSchema(ctx, db); err != nil {
			t.Fatalf("failed to sync schema: %v", err)
		}

		stmts := []string{
			"INSERT INTO videos (video_id, url, title, author, thumbnail, duration, length) VALUES ('v', 'u', 't', 'a', 'th', '1:00', 60)",
			"INSERT INTO playlists (name) VALUES ('p1')",
			"INSERT INTO playlists (name) VALUES ('p2')",
			"INSERT OR IGNORE INTO PlaylistVideos (VideoId, PlaylistId) VALUES (1, 1)",
			"INSERT OR IGNORE INTO PlaylistVideos (VideoId, PlaylistId) VALUES (1, 1)",
			"INSERT OR IGNORE INTO PlaylistVideos (VideoId, PlaylistId) VALUES (1, 2)",
		}
		for _, stmt := range stmts {
			if _, err := db.Exec(stmt); err != nil {
				t.Fatalf("failed to execute %q: %v", stmt, err)
			}
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM PlaylistVideos").Scan(&count); err != nil {
			t.Fatalf("failed to count links: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 links, got %d", count)
		}
	})

	t.Run("Foreign Keys Cascade", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "nested", "db.sqlite"), 1000)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := SyncSchema(ctx, db); err != nil {
			t.Fatalf("failed to sync schema: %v", err)
		}

		stmts := []string{
			"INSERT INTO videos (video_id, url, title, author, thumbnail, duration, length) VALUES ('v', 'u', 't', 'a', 'th', '1:00', 60)",
			"INSERT INTO playlists (name) VALUES ('p1')",
			"INSERT INTO PlaylistVideos (VideoId, PlaylistId) VALUES (1, 1)",
			"DELETE FROM videos WHERE id = 1",
		}
		for _, stmt := range stmts {
			if _, err := db.Exec(stmt); err != nil {
				t.Fatalf("failed to execute %q: %v", stmt, err)
			}
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM PlaylistVideos").Scan(&count); err != nil {
			t.Fatalf("failed to count links: %v", err)
		}
		if count != 0 {
			t.Errorf("expected links to be removed with their video, got %d", count)
		}
	})

	t.Run("DropSchema", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := SyncSchema(ctx, db); err != nil {
			t.Fatalf("failed to sync schema: %v", err)
		}

		if err := DropSchema(ctx, db); err != nil {
			t.Fatalf("failed to drop schema: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM videos"); err == nil {
			t.Error("videos table should be gone after drop")
		}
	})
}
