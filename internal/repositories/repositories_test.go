package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with the schema applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryPath, 0)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.SyncSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to sync schema: %v", err)
	}

	return db
}

func newVideo(videoID string) *models.Video {
	return &models.Video{
		VideoID:   videoID,
		URL:       "https://www.youtube.com/watch?v=" + videoID,
		Title:     "Title " + videoID,
		Author:    "Author",
		Thumbnail: "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg",
		Duration:  "3:00",
		Length:    180,
	}
}

func mustCreatePlaylists(t *testing.T, repo *PlaylistRepository, names ...string) []*models.Playlist {
	t.Helper()

	playlists := make([]*models.Playlist, len(names))
	for i, name := range names {
		playlists[i] = &models.Playlist{Name: name}
	}
	if err := repo.CreateMany(context.Background(), playlists); err != nil {
		t.Fatalf("failed to create playlists: %v", err)
	}
	return playlists
}

func TestVideoRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		video := newVideo("abc123")

		if err := repo.Create(ctx, video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		if video.ID == 0 {
			t.Fatal("video ID should be set after creation")
		}

		retrieved, err := repo.Get(ctx, video.ID)
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}

		if !reflect.DeepEqual(retrieved, video) {
			t.Errorf("expected %+v, got %+v", video, retrieved)
		}
	})

	t.Run("CountByVideoID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		if err := repo.Create(ctx, newVideo("abc123")); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		count, err := repo.CountByVideoID(ctx, "abc123")
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1, got %d", count)
		}

		count, err = repo.CountByVideoID(ctx, "missing")
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0, got %d", count)
		}
	})

	t.Run("GetMany & List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		for i := range 3 {
			if err := repo.Create(ctx, newVideo(fmt.Sprintf("vid%d", i))); err != nil {
				t.Fatalf("failed to create video: %v", err)
			}
		}

		some, err := repo.GetMany(ctx, []int64{3, 1, 99, 1})
		if err != nil {
			t.Fatalf("failed to get videos: %v", err)
		}
		if len(some) != 2 || some[0].ID != 1 || some[1].ID != 3 {
			t.Errorf("expected videos 1 and 3, got %+v", some)
		}

		none, err := repo.GetMany(ctx, nil)
		if err != nil {
			t.Fatalf("failed to get videos: %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", none)
		}

		all, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 videos, got %d", len(all))
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		video := newVideo("abc123")
		if err := repo.Create(ctx, video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		video.Title = "Renamed"
		if err := repo.Update(ctx, video); err != nil {
			t.Fatalf("failed to update video: %v", err)
		}

		retrieved, err := repo.Get(ctx, video.ID)
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if retrieved.Title != "Renamed" {
			t.Errorf("expected title Renamed, got %s", retrieved.Title)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoRepository(db)
		for i := range 2 {
			if err := repo.Create(ctx, newVideo(fmt.Sprintf("vid%d", i))); err != nil {
				t.Fatalf("failed to create video: %v", err)
			}
		}

		tt := []struct {
			ids  []int64
			want int64
		}{
			{ids: []int64{1, 42}, want: 1},
			{ids: []int64{1, 2}, want: 1},
			{ids: []int64{1, 2}, want: 0},
			{ids: nil, want: 0},
		}

		for _, tc := range tt {
			n, err := repo.Delete(ctx, tc.ids)
			if err != nil {
				t.Fatalf("failed to delete %v: %v", tc.ids, err)
			}
			if n != tc.want {
				t.Errorf("Delete(%v) = %d, want %d", tc.ids, n, tc.want)
			}
		}

		if _, err := repo.Get(ctx, 1); !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound after delete, got %v", err)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		playlist := &models.Playlist{Name: "Watch Later"}

		if err := repo.Create(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		retrieved, err := repo.Get(ctx, playlist.ID)
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if retrieved.Name != "Watch Later" {
			t.Errorf("expected name Watch Later, got %s", retrieved.Name)
		}
	})

	t.Run("CreateMany keeps order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		playlists := mustCreatePlaylists(t, repo, "one", "two", "three")

		for i, p := range playlists {
			if p.ID != int64(i+1) {
				t.Errorf("expected playlist %s to get id %d, got %d", p.Name, i+1, p.ID)
			}
		}

		all, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 playlists, got %d", len(all))
		}
	})

	t.Run("Rename", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		mustCreatePlaylists(t, repo, "one", "two")

		n, err := repo.Rename(ctx, []int64{2}, "deux")
		if err != nil {
			t.Fatalf("failed to rename: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 row affected, got %d", n)
		}

		n, err = repo.Rename(ctx, []int64{42}, "nobody")
		if err != nil {
			t.Fatalf("failed to rename: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 rows affected, got %d", n)
		}

		got, err := repo.GetMany(ctx, []int64{2})
		if err != nil {
			t.Fatalf("failed to get playlists: %v", err)
		}
		if len(got) != 1 || got[0].Name != "deux" {
			t.Errorf("expected renamed playlist, got %+v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		mustCreatePlaylists(t, repo, "one", "two")

		n, err := repo.Delete(ctx, []int64{1, 2, 3})
		if err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 deleted, got %d", n)
		}
	})
}

func TestPlaylistVideoRepository(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*sql.DB, *VideoRepository, *PlaylistRepository, *PlaylistVideoRepository) {
		t.Helper()
		db := setupTestDB(t)
		return db, NewVideoRepository(db), NewPlaylistRepository(db), NewPlaylistVideoRepository(db)
	}

	t.Run("Link is inert on repeat", func(t *testing.T) {
		db, videos, playlists, links := setup(t)
		defer db.Close()

		video := newVideo("abc123")
		if err := videos.Create(ctx, video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}
		mustCreatePlaylists(t, playlists, "one")

		first, err := links.Link(ctx, video.ID, 1)
		if err != nil {
			t.Fatalf("failed to link: %v", err)
		}
		second, err := links.Link(ctx, video.ID, 1)
		if err != nil {
			t.Fatalf("relinking the same pair should not fail: %v", err)
		}
		if !first || second {
			t.Errorf("expected first link to insert and second to be a no-op, got %v %v", first, second)
		}
	})

	t.Run("Attach ignores unknown playlists", func(t *testing.T) {
		db, videos, playlists, links := setup(t)
		defer db.Close()

		video := newVideo("abc123")
		if err := videos.Create(ctx, video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}
		mustCreatePlaylists(t, playlists, "one", "two")

		n, err := links.Attach(ctx, video.ID, []int64{1, 2, 99, 2})
		if err != nil {
			t.Fatalf("failed to attach: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 links, got %d", n)
		}

		byVideo, err := links.PlaylistsByVideo(ctx, []int64{video.ID})
		if err != nil {
			t.Fatalf("failed to load playlists: %v", err)
		}
		if got := byVideo[video.ID]; len(got) != 2 || got[0].Name != "one" || got[1].Name != "two" {
			t.Errorf("expected playlists one and two, got %+v", got)
		}
	})

	t.Run("ReplaceForVideo", func(t *testing.T) {
		db, videos, playlists, links := setup(t)
		defer db.Close()

		video := newVideo("abc123")
		if err := videos.Create(ctx, video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}
		mustCreatePlaylists(t, playlists, "one", "two", "three")

		if _, err := links.Attach(ctx, video.ID, []int64{1, 2}); err != nil {
			t.Fatalf("failed to attach: %v", err)
		}

		if _, err := links.ReplaceForVideo(ctx, video.ID, []int64{3}); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		all, err := links.List(ctx)
		if err != nil {
			t.Fatalf("failed to list links: %v", err)
		}
		if len(all) != 1 || all[0] != (models.PlaylistVideo{VideoID: video.ID, PlaylistID: 3}) {
			t.Errorf("expected only the link to playlist 3, got %+v", all)
		}

		if _, err := links.ReplaceForVideo(ctx, video.ID, nil); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		all, err = links.List(ctx)
		if err != nil {
			t.Fatalf("failed to list links: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("expected no links, got %+v", all)
		}
	})

	t.Run("VideosByPlaylist & DeleteByPlaylist", func(t *testing.T) {
		db, videos, playlists, links := setup(t)
		defer db.Close()

		mustCreatePlaylists(t, playlists, "one", "two")
		for i := range 3 {
			video := newVideo(fmt.Sprintf("vid%d", i))
			if err := videos.Create(ctx, video); err != nil {
				t.Fatalf("failed to create video: %v", err)
			}
			if _, err := links.Attach(ctx, video.ID, []int64{1}); err != nil {
				t.Fatalf("failed to attach: %v", err)
			}
		}

		byPlaylist, err := links.VideosByPlaylist(ctx, []int64{1, 2})
		if err != nil {
			t.Fatalf("failed to load videos: %v", err)
		}
		if len(byPlaylist[1]) != 3 {
			t.Errorf("expected 3 videos in playlist 1, got %d", len(byPlaylist[1]))
		}
		if len(byPlaylist[2]) != 0 {
			t.Errorf("expected no videos in playlist 2, got %d", len(byPlaylist[2]))
		}

		n, err := links.DeleteByPlaylist(ctx, 1)
		if err != nil {
			t.Fatalf("failed to delete links: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 links removed, got %d", n)
		}
	})

	t.Run("Video delete cascades to links", func(t *testing.T) {
		db, videos, playlists, links := setup(t)
		defer db.Close()

		video := newVideo("abc123")
		if err := videos.Create(ctx, video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}
		mustCreatePlaylists(t, playlists, "one")
		if _, err := links.Attach(ctx, video.ID, []int64{1}); err != nil {
			t.Fatalf("failed to attach: %v", err)
		}

		if _, err := videos.Delete(ctx, []int64{video.ID}); err != nil {
			t.Fatalf("failed to delete video: %v", err)
		}

		all, err := links.List(ctx)
		if err != nil {
			t.Fatalf("failed to list links: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("expected links to be removed with the video, got %+v", all)
		}
	})
}

func TestRunInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		err := RunInTx(ctx, db, func(tx *sql.Tx) error {
			return NewPlaylistRepository(db).WithTx(tx).Create(ctx, &models.Playlist{Name: "kept"})
		})
		if err != nil {
			t.Fatalf("RunInTx failed: %v", err)
		}

		all, err := NewPlaylistRepository(db).List(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected committed playlist, got %d", len(all))
		}
	})

	t.Run("rolls back", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		boom := errors.New("boom")
		err := RunInTx(ctx, db, func(tx *sql.Tx) error {
			if err := NewPlaylistRepository(db).WithTx(tx).Create(ctx, &models.Playlist{Name: "dropped"}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		all, err := NewPlaylistRepository(db).List(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("expected rollback, got %d playlists", len(all))
		}
	})
}

func TestHelpers(t *testing.T) {
	t.Run("inClause", func(t *testing.T) {
		clause, args := inClause([]int64{4, 5, 6})
		if clause != "(?, ?, ?)" {
			t.Errorf("unexpected clause %q", clause)
		}
		if len(args) != 3 || args[0] != int64(4) {
			t.Errorf("unexpected args %v", args)
		}
	})

	t.Run("chunkIDs", func(t *testing.T) {
		ids := make([]int64, maxInArgs*2+1)
		chunks := chunkIDs(ids)
		if len(chunks) != 3 || len(chunks[2]) != 1 {
			t.Errorf("unexpected chunking: %d chunks", len(chunks))
		}
		if chunkIDs(nil) != nil {
			t.Error("expected no chunks for no ids")
		}
	})
}
