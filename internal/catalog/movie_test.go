package catalog

import (
	"errors"
	"testing"
)

func TestStore_UpsertMovie_Create(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie(27205)
	created, err := store.UpsertMovie(m)
	if err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if m.ID == 0 {
		t.Error("ID should be set after create")
	}
	if m.Status != StatusPending {
		t.Errorf("Status = %q, want %q", m.Status, StatusPending)
	}
}

func TestStore_UpsertMovie_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	first := testMovie(27205)
	if _, err := store.UpsertMovie(first); err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}

	second := testMovie(27205)
	created, err := store.UpsertMovie(second)
	if err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}
	if created {
		t.Error("created = true on rescan, want false")
	}
	if second.ID != first.ID {
		t.Errorf("ID = %d, want %d", second.ID, first.ID)
	}

	movies, err := store.ListMovies(MovieFilter{})
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("got %d movies, want 1", len(movies))
	}
	if movies[0].File.Resolution != first.File.Resolution {
		t.Errorf("Resolution = %q, want %q", movies[0].File.Resolution, first.File.Resolution)
	}
}

func TestStore_UpsertMovie_CatalogMetadataImmutable(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	original := testMovie(27205)
	if _, err := store.UpsertMovie(original); err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}
	if err := store.SetMovieStatus(original.ID, StatusCompleted); err != nil {
		t.Fatalf("SetMovieStatus: %v", err)
	}

	// Rescan with different file facts and different (stale) catalog fields.
	rescan := testMovie(27205)
	rescan.Title = "Inception RENAMED"
	rescan.Overview = "changed"
	rescan.File.Resolution = "2160p"
	rescan.File.Path = "/movies/Inception.2010.2160p.WEB-DL.mkv"
	if _, err := store.UpsertMovie(rescan); err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}

	got, err := store.GetMovie(original.ID)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if got.Title != "Inception" {
		t.Errorf("Title = %q, want %q (catalog metadata must not change on rescan)", got.Title, "Inception")
	}
	if got.Overview != original.Overview {
		t.Errorf("Overview changed on rescan: %q", got.Overview)
	}
	if got.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q (transcode status must not change on rescan)", got.Status, StatusCompleted)
	}
	if got.File.Resolution != "2160p" {
		t.Errorf("Resolution = %q, want %q (file fields must be refreshed)", got.File.Resolution, "2160p")
	}
	if got.File.Path != "/movies/Inception.2010.2160p.WEB-DL.mkv" {
		t.Errorf("Path = %q not refreshed", got.File.Path)
	}
}

func TestStore_GetMovie_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetMovie(9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_GetMovieByTMDBID_Missing(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m, err := store.GetMovieByTMDBID(123)
	if err != nil {
		t.Fatalf("GetMovieByTMDBID: %v", err)
	}
	if m != nil {
		t.Errorf("got %+v, want nil", m)
	}
}

func TestStore_ListMovies_ByStatus(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	a := testMovie(1)
	b := testMovie(2)
	if _, err := store.UpsertMovie(a); err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}
	if _, err := store.UpsertMovie(b); err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}
	if err := store.SetMovieStatus(b.ID, StatusQueued); err != nil {
		t.Fatalf("SetMovieStatus: %v", err)
	}

	queued, err := store.ListMovies(MovieFilter{Status: ptr(StatusQueued)})
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(queued) != 1 || queued[0].ID != b.ID {
		t.Errorf("queued = %v, want only movie %d", queued, b.ID)
	}
}

func TestStore_DeleteMovie_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	if err := store.DeleteMovie(42); err != nil {
		t.Errorf("DeleteMovie on missing row: %v", err)
	}
}
