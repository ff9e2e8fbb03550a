package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the scanarr server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new scanarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) do(method, path string, body any, result any) error {
	var rdr io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		rdr = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Scanning bool   `json:"scanning"`
}

type FolderResponse struct {
	ID     int64  `json:"id"`
	Path   string `json:"path"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

type CandidateResponse struct {
	ExternalID  int64   `json:"external_id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Score       float64 `json:"score"`
}

type ConflictResponse struct {
	ID         int64               `json:"id"`
	FileName   string              `json:"file_name"`
	FilePath   string              `json:"file_path"`
	MediaType  string              `json:"media_type"`
	Candidates []CandidateResponse `json:"candidates"`
	Resolved   bool                `json:"resolved"`
	SelectedID *int64              `json:"selectedId,omitempty"`
}

type FileResponse struct {
	Path       string `json:"path"`
	Resolution string `json:"resolution,omitempty"`
	Source     string `json:"source,omitempty"`
}

type MovieResponse struct {
	ID     int64        `json:"id"`
	TMDBID int64        `json:"tmdb_id"`
	Title  string       `json:"title"`
	Status string       `json:"transcode_status"`
	File   FileResponse `json:"file"`
}

type EpisodeResponse struct {
	ID       int64        `json:"id"`
	SeriesID int64        `json:"series_id"`
	Season   int          `json:"season"`
	Episode  int          `json:"episode"`
	Title    string       `json:"title"`
	Status   string       `json:"transcode_status"`
	File     FileResponse `json:"file"`
}

type StatusListResponse struct {
	Status   string            `json:"status"`
	Movies   []MovieResponse   `json:"movies"`
	Episodes []EpisodeResponse `json:"episodes"`
}

type StatusUpdateResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Scan() error {
	return c.do(http.MethodPost, "/scanner/scan", nil, nil)
}

func (c *Client) Folders() ([]FolderResponse, error) {
	var resp []FolderResponse
	if err := c.get("/scanner/folders", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) AddFolder(path, folderType string) (*FolderResponse, error) {
	req := map[string]string{"path": path, "type": folderType}
	var resp FolderResponse
	if err := c.do(http.MethodPost, "/scanner/folders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetFolderActive(id int64, active bool) (*FolderResponse, error) {
	req := map[string]bool{"active": active}
	var resp FolderResponse
	if err := c.do(http.MethodPatch, fmt.Sprintf("/scanner/folders/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteFolder(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/scanner/folders/%d", id), nil, nil)
}

func (c *Client) Conflicts(unresolvedOnly bool) ([]ConflictResponse, error) {
	path := "/scanner/conflicts"
	if unresolvedOnly {
		path += "?unresolved=true"
	}
	var resp []ConflictResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ResolveConflict(id, selectedID int64) (*ConflictResponse, error) {
	req := map[string]int64{"selectedId": selectedID}
	var resp ConflictResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/scanner/conflicts/%d/resolve", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteConflict(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/scanner/conflicts/%d", id), nil, nil)
}

func (c *Client) DeleteAllConflicts() (int64, error) {
	var resp map[string]int64
	if err := c.do(http.MethodDelete, "/scanner/conflicts", nil, &resp); err != nil {
		return 0, err
	}
	return resp["deleted"], nil
}

func (c *Client) SetTranscodeStatus(target string, id int64, status string) (*StatusUpdateResponse, error) {
	req := map[string]string{"status": status}
	var resp StatusUpdateResponse
	if err := c.do(http.MethodPut, fmt.Sprintf("/transcode/%s/%d", target, id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListByStatus(status string) (*StatusListResponse, error) {
	var resp StatusListResponse
	if err := c.get("/transcode/status/"+status, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
