// Package tmdb provides a client for The Movie Database API.
package tmdb

import (
	"strconv"
	"strings"
)

// Candidate is one search result, movie or series. Enough fields to render
// a disambiguation choice to a human.
type Candidate struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"` // "2010-07-16"
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// Year extracts the year from ReleaseDate.
func (c *Candidate) Year() int {
	return yearOf(c.ReleaseDate)
}

// Genre represents a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the full metadata record for a movie.
type MovieDetails struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Genres       []Genre `json:"genres"`
}

// SeriesDetails is the full metadata record for a series.
type SeriesDetails struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Genres       []Genre `json:"genres"`
}

// EpisodeDetails is the metadata record for a single episode.
type EpisodeDetails struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	StillPath     string `json:"still_path"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
}

// GenreNames flattens a genre list to a comma-separated string for storage.
func GenreNames(genres []Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// movieSearchResponse mirrors /3/search/movie.
type movieSearchResponse struct {
	Results []Candidate `json:"results"`
}

// tvSearchResult mirrors one /3/search/tv result; TV uses name fields.
type tvSearchResult struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FirstAirDate string `json:"first_air_date"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
}

type tvSearchResponse struct {
	Results []tvSearchResult `json:"results"`
}
