package catalog

// MovieFilter specifies criteria for listing movies.
type MovieFilter struct {
	Status *TranscodeStatus
	Limit  int // 0 = no limit
	Offset int
}

// SeriesFilter specifies criteria for listing series.
type SeriesFilter struct {
	Status *TranscodeStatus
	Limit  int
	Offset int
}

// EpisodeFilter specifies criteria for listing episodes.
type EpisodeFilter struct {
	SeriesID *int64
	Season   *int
	Status   *TranscodeStatus
	Limit    int
	Offset   int
}

// FolderFilter specifies criteria for listing folders.
type FolderFilter struct {
	Kind       *FolderKind
	ActiveOnly bool
}
