package catalog

import (
	"errors"
	"testing"
)

func addTestSeries(t *testing.T, store *Store, tmdbID int64) *Series {
	t.Helper()
	sr := testSeries(tmdbID)
	if _, err := store.UpsertSeries(sr); err != nil {
		t.Fatalf("UpsertSeries: %v", err)
	}
	return sr
}

func TestStore_UpsertSeries_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	first := testSeries(1396)
	created, err := store.UpsertSeries(first)
	if err != nil {
		t.Fatalf("UpsertSeries: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}

	second := testSeries(1396)
	second.Title = "stale title from rescan"
	created, err = store.UpsertSeries(second)
	if err != nil {
		t.Fatalf("UpsertSeries: %v", err)
	}
	if created {
		t.Error("created = true on rescan, want false")
	}
	if second.ID != first.ID {
		t.Errorf("ID = %d, want %d", second.ID, first.ID)
	}
	if second.Title != "Breaking Bad" {
		t.Errorf("Title = %q, want stored catalog title", second.Title)
	}
}

func TestStore_UpsertEpisode_CreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	sr := addTestSeries(t, store, 1396)

	e := testEpisode(sr.ID, 1, 1)
	created, err := store.UpsertEpisode(e)
	if err != nil {
		t.Fatalf("UpsertEpisode: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if e.Status != StatusPending {
		t.Errorf("Status = %q, want %q", e.Status, StatusPending)
	}

	// Same (series, season, episode) with new file facts updates in place.
	rescan := testEpisode(sr.ID, 1, 1)
	rescan.File.Resolution = "1080p"
	created, err = store.UpsertEpisode(rescan)
	if err != nil {
		t.Fatalf("UpsertEpisode: %v", err)
	}
	if created {
		t.Error("created = true on rescan, want false")
	}
	if rescan.ID != e.ID {
		t.Errorf("ID = %d, want %d", rescan.ID, e.ID)
	}

	eps, err := store.ListEpisodes(EpisodeFilter{SeriesID: &sr.ID})
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(eps) != 1 {
		t.Fatalf("got %d episodes, want 1", len(eps))
	}
	if eps[0].File.Resolution != "1080p" {
		t.Errorf("Resolution = %q, want 1080p", eps[0].File.Resolution)
	}
	if eps[0].Title != "Pilot" {
		t.Errorf("Title = %q, want Pilot (catalog field untouched)", eps[0].Title)
	}
}

func TestStore_GetEpisodeByNumber(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	sr := addTestSeries(t, store, 1396)

	e := testEpisode(sr.ID, 2, 5)
	if _, err := store.UpsertEpisode(e); err != nil {
		t.Fatalf("UpsertEpisode: %v", err)
	}

	got, err := store.GetEpisodeByNumber(sr.ID, 2, 5)
	if err != nil {
		t.Fatalf("GetEpisodeByNumber: %v", err)
	}
	if got == nil || got.ID != e.ID {
		t.Errorf("got %+v, want episode %d", got, e.ID)
	}

	missing, err := store.GetEpisodeByNumber(sr.ID, 9, 9)
	if err != nil {
		t.Fatalf("GetEpisodeByNumber: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v, want nil", missing)
	}
}

func TestStore_GetEpisode_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetEpisode(404)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
