// Package api implements the REST API for scan control, conflict
// resolution and transcode status tracking.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vmunix/scanarr/internal/catalog"
	"github.com/vmunix/scanarr/internal/conflict"
	"github.com/vmunix/scanarr/internal/scanner"
)

// Server is the API server.
type Server struct {
	catalog   *catalog.Store
	conflicts *conflict.Store
	scanner   *scanner.Scanner
	version   string
}

// New creates a new API server.
func New(cat *catalog.Store, conf *conflict.Store, sc *scanner.Scanner, version string) *Server {
	return &Server{
		catalog:   cat,
		conflicts: conf,
		scanner:   sc,
		version:   version,
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Scanner
	mux.HandleFunc("POST /scanner/scan", s.triggerScan)

	// Folders
	mux.HandleFunc("GET /scanner/folders", s.listFolders)
	mux.HandleFunc("POST /scanner/folders", s.addFolder)
	mux.HandleFunc("PATCH /scanner/folders/{id}", s.updateFolder)
	mux.HandleFunc("DELETE /scanner/folders/{id}", s.deleteFolder)

	// Conflicts
	mux.HandleFunc("GET /scanner/conflicts", s.listConflicts)
	mux.HandleFunc("POST /scanner/conflicts/{id}/resolve", s.resolveConflict)
	mux.HandleFunc("DELETE /scanner/conflicts/{id}", s.deleteConflict)
	mux.HandleFunc("DELETE /scanner/conflicts", s.deleteAllConflicts)

	// Transcode status
	mux.HandleFunc("PUT /transcode/movie/{id}", s.setMovieStatus)
	mux.HandleFunc("PUT /transcode/episode/{id}", s.setEpisodeStatus)
	mux.HandleFunc("PUT /transcode/series/{id}", s.setSeriesStatus)
	mux.HandleFunc("GET /transcode/status/{status}", s.listByStatus)
	mux.HandleFunc("GET /transcode/status/{status}/movies", s.listMoviesByStatus)
	mux.HandleFunc("GET /transcode/status/{status}/episodes", s.listEpisodesByStatus)

	// System
	mux.HandleFunc("GET /status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// Scanner handlers

func (s *Server) triggerScan(w http.ResponseWriter, r *http.Request) {
	// The scan outlives the request.
	if err := s.scanner.Start(context.WithoutCancel(r.Context())); err != nil {
		if errors.Is(err, scanner.ErrScanInProgress) {
			writeError(w, http.StatusConflict, "SCAN_IN_PROGRESS", "A scan is already running")
			return
		}
		writeError(w, http.StatusInternalServerError, "SCAN_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scan started"})
}

// Folder handlers

func (s *Server) listFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.catalog.ListFolders(catalog.FolderFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := make([]folderResponse, len(folders))
	for i, f := range folders {
		resp[i] = folderToResponse(f)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) addFolder(w http.ResponseWriter, r *http.Request) {
	var req addFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "INVALID_PATH", "path is required")
		return
	}
	kind, err := catalog.ParseFolderKind(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "type must be 'movies' or 'series'")
		return
	}

	f := &catalog.Folder{Path: req.Path, Kind: kind, Active: true}
	if err := s.catalog.AddFolder(f); err != nil {
		if errors.Is(err, catalog.ErrDuplicate) {
			writeError(w, http.StatusConflict, "DUPLICATE", "Folder already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, folderToResponse(f))
}

func (s *Server) updateFolder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req updateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "active is required")
		return
	}

	if err := s.catalog.SetFolderActive(id, *req.Active); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Folder not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	f, err := s.catalog.GetFolder(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, folderToResponse(f))
}

func (s *Server) deleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.catalog.DeleteFolder(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Conflict handlers

func (s *Server) listConflicts(w http.ResponseWriter, r *http.Request) {
	unresolvedOnly := r.URL.Query().Get("unresolved") == "true"
	conflicts, err := s.conflicts.List(unresolvedOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := make([]conflictResponse, len(conflicts))
	for i, c := range conflicts {
		resp[i] = conflictToResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resolveConflict(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req resolveConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.SelectedID == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "selectedId is required")
		return
	}

	if err := s.scanner.Resolve(r.Context(), id, req.SelectedID); err != nil {
		if errors.Is(err, conflict.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conflict not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "RESOLVE_ERROR", err.Error())
		return
	}

	c, err := s.conflicts.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, conflictToResponse(c))
}

func (s *Server) deleteConflict(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.conflicts.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteAllConflicts(w http.ResponseWriter, r *http.Request) {
	n, err := s.conflicts.DeleteAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Transcode handlers

func (s *Server) setMovieStatus(w http.ResponseWriter, r *http.Request) {
	id, status, ok := s.statusTarget(w, r)
	if !ok {
		return
	}
	if err := s.catalog.SetMovieStatus(id, status); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusUpdateResponse{ID: id, Status: string(status)})
}

func (s *Server) setEpisodeStatus(w http.ResponseWriter, r *http.Request) {
	id, status, ok := s.statusTarget(w, r)
	if !ok {
		return
	}
	if err := s.catalog.SetEpisodeStatus(id, status); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Episode not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusUpdateResponse{ID: id, Status: string(status)})
}

func (s *Server) setSeriesStatus(w http.ResponseWriter, r *http.Request) {
	id, status, ok := s.statusTarget(w, r)
	if !ok {
		return
	}
	if err := s.catalog.CascadeSeriesStatus(id, status); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Series not found")
		case errors.Is(err, catalog.ErrNoEpisodes):
			writeError(w, http.StatusConflict, "NO_EPISODES", "Series has no episodes")
		default:
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, statusUpdateResponse{ID: id, Status: string(status)})
}

// statusTarget parses the {id} path segment and the {status} request body
// shared by all three status-update handlers.
func (s *Server) statusTarget(w http.ResponseWriter, r *http.Request) (int64, catalog.TranscodeStatus, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return 0, "", false
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return 0, "", false
	}
	status, err := catalog.ParseTranscodeStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
		return 0, "", false
	}
	return id, status, true
}

func (s *Server) listByStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.pathStatus(w, r)
	if !ok {
		return
	}

	movies, err := s.catalog.ListMovies(catalog.MovieFilter{Status: &status})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	episodes, err := s.catalog.ListEpisodes(catalog.EpisodeFilter{Status: &status})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := statusListResponse{
		Status:   string(status),
		Movies:   make([]movieResponse, len(movies)),
		Episodes: make([]episodeResponse, len(episodes)),
	}
	for i, m := range movies {
		resp.Movies[i] = movieToResponse(m)
	}
	for i, e := range episodes {
		resp.Episodes[i] = episodeToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listMoviesByStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.pathStatus(w, r)
	if !ok {
		return
	}
	movies, err := s.catalog.ListMovies(catalog.MovieFilter{Status: &status})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	resp := make([]movieResponse, len(movies))
	for i, m := range movies {
		resp[i] = movieToResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listEpisodesByStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.pathStatus(w, r)
	if !ok {
		return
	}
	episodes, err := s.catalog.ListEpisodes(catalog.EpisodeFilter{Status: &status})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	resp := make([]episodeResponse, len(episodes))
	for i, e := range episodes {
		resp[i] = episodeToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) pathStatus(w http.ResponseWriter, r *http.Request) (catalog.TranscodeStatus, bool) {
	status, err := catalog.ParseTranscodeStatus(r.PathValue("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
		return "", false
	}
	return status, true
}

// System handlers

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"scanning": s.scanner.Scanning(),
	})
}
