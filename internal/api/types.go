package api

import (
	"time"

	"github.com/vmunix/scanarr/internal/catalog"
	"github.com/vmunix/scanarr/internal/conflict"
)

// Requests

type addFolderRequest struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

type updateFolderRequest struct {
	Active *bool `json:"active"`
}

type resolveConflictRequest struct {
	SelectedID int64 `json:"selectedId"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// Responses

type folderResponse struct {
	ID      int64     `json:"id"`
	Path    string    `json:"path"`
	Type    string    `json:"type"`
	Active  bool      `json:"active"`
	AddedAt time.Time `json:"added_at"`
}

func folderToResponse(f *catalog.Folder) folderResponse {
	return folderResponse{
		ID:      f.ID,
		Path:    f.Path,
		Type:    string(f.Kind),
		Active:  f.Active,
		AddedAt: f.AddedAt,
	}
}

type candidateResponse struct {
	ExternalID  int64   `json:"external_id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	Score       float64 `json:"score"`
}

type conflictResponse struct {
	ID         int64               `json:"id"`
	FileName   string              `json:"file_name"`
	FilePath   string              `json:"file_path"`
	MediaType  string              `json:"media_type"`
	Candidates []candidateResponse `json:"candidates"`
	Resolved   bool                `json:"resolved"`
	SelectedID *int64              `json:"selectedId,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func conflictToResponse(c *conflict.Conflict) conflictResponse {
	resp := conflictResponse{
		ID:         c.ID,
		FileName:   c.FileName,
		FilePath:   c.FilePath,
		MediaType:  string(c.MediaType),
		Candidates: make([]candidateResponse, len(c.Candidates)),
		Resolved:   c.Resolved,
		SelectedID: c.SelectedID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for i, cand := range c.Candidates {
		resp.Candidates[i] = candidateResponse{
			ExternalID:  cand.ExternalID,
			Title:       cand.Title,
			ReleaseDate: cand.ReleaseDate,
			Overview:    cand.Overview,
			PosterPath:  cand.PosterPath,
			Score:       cand.Score,
		}
	}
	return resp
}

type fileResponse struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	Resolution string `json:"resolution,omitempty"`
	Quality    string `json:"quality,omitempty"`
	Source     string `json:"source,omitempty"`
	Audio      string `json:"audio,omitempty"`
	Provider   string `json:"provider,omitempty"`
}

type movieResponse struct {
	ID          int64        `json:"id"`
	TMDBID      int64        `json:"tmdb_id"`
	Title       string       `json:"title"`
	ReleaseDate string       `json:"release_date,omitempty"`
	Genres      string       `json:"genres,omitempty"`
	Status      string       `json:"transcode_status"`
	File        fileResponse `json:"file"`
	AddedAt     time.Time    `json:"added_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func movieToResponse(m *catalog.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		TMDBID:      m.TMDBID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Genres:      m.Genres,
		Status:      string(m.Status),
		File:        fileToResponse(m.File),
		AddedAt:     m.AddedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type episodeResponse struct {
	ID       int64        `json:"id"`
	SeriesID int64        `json:"series_id"`
	TMDBID   int64        `json:"tmdb_id"`
	Season   int          `json:"season"`
	Episode  int          `json:"episode"`
	Title    string       `json:"title"`
	AirDate  string       `json:"air_date,omitempty"`
	Status   string       `json:"transcode_status"`
	File     fileResponse `json:"file"`
}

func episodeToResponse(e *catalog.Episode) episodeResponse {
	return episodeResponse{
		ID:       e.ID,
		SeriesID: e.SeriesID,
		TMDBID:   e.TMDBID,
		Season:   e.Season,
		Episode:  e.Episode,
		Title:    e.Title,
		AirDate:  e.AirDate,
		Status:   string(e.Status),
		File:     fileToResponse(e.File),
	}
}

func fileToResponse(f catalog.FileInfo) fileResponse {
	return fileResponse{
		Path:       f.Path,
		Name:       f.Name,
		Resolution: f.Resolution,
		Quality:    f.Quality,
		Source:     f.Source,
		Audio:      f.Audio,
		Provider:   f.Provider,
	}
}

type statusUpdateResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type statusListResponse struct {
	Status   string            `json:"status"`
	Movies   []movieResponse   `json:"movies"`
	Episodes []episodeResponse `json:"episodes"`
}
