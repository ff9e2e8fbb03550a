package catalog

import (
	"errors"
	"testing"
)

func TestParseTranscodeStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TranscodeStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"QUEUED", StatusQueued, false},
		{"In_Progress", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"failed", StatusFailed, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTranscodeStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTranscodeStatus(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTranscodeStatus(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTranscodeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStore_SetMovieStatus(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie(27205)
	if _, err := store.UpsertMovie(m); err != nil {
		t.Fatalf("UpsertMovie: %v", err)
	}

	if err := store.SetMovieStatus(m.ID, StatusInProgress); err != nil {
		t.Fatalf("SetMovieStatus: %v", err)
	}

	got, err := store.GetMovie(m.ID)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if got.Status != StatusInProgress {
		t.Errorf("Status = %q, want %q", got.Status, StatusInProgress)
	}
}

func TestStore_SetMovieStatus_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	err := store.SetMovieStatus(9999, StatusQueued)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_CascadeSeriesStatus(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	sr := addTestSeries(t, store, 1396)

	for ep := 1; ep <= 3; ep++ {
		e := testEpisode(sr.ID, 1, ep)
		if _, err := store.UpsertEpisode(e); err != nil {
			t.Fatalf("UpsertEpisode: %v", err)
		}
	}

	if err := store.CascadeSeriesStatus(sr.ID, StatusCompleted); err != nil {
		t.Fatalf("CascadeSeriesStatus: %v", err)
	}

	gotSeries, err := store.GetSeries(sr.ID)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if gotSeries.Status != StatusCompleted {
		t.Errorf("series Status = %q, want %q", gotSeries.Status, StatusCompleted)
	}

	eps, err := store.ListEpisodes(EpisodeFilter{SeriesID: &sr.ID})
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(eps) != 3 {
		t.Fatalf("got %d episodes, want 3", len(eps))
	}
	for _, e := range eps {
		if e.Status != StatusCompleted {
			t.Errorf("episode S%02dE%02d Status = %q, want %q", e.Season, e.Episode, e.Status, StatusCompleted)
		}
	}
}

func TestStore_CascadeSeriesStatus_SeriesMissing(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	err := store.CascadeSeriesStatus(9999, StatusCompleted)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_CascadeSeriesStatus_NoEpisodes(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	sr := addTestSeries(t, store, 1396)

	err := store.CascadeSeriesStatus(sr.ID, StatusCompleted)
	if !errors.Is(err, ErrNoEpisodes) {
		t.Fatalf("err = %v, want ErrNoEpisodes", err)
	}

	// Atomicity: the series row must not have been touched.
	got, err := store.GetSeries(sr.ID)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("series Status = %q, want %q (no partial update)", got.Status, StatusPending)
	}
}
