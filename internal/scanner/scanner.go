// Package scanner walks configured media folders, matches files against the
// external metadata catalog, and synchronizes confirmed matches into the
// library catalog. Ambiguous or unmatched files become conflicts for a
// human to resolve.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/scanarr/internal/catalog"
	"github.com/vmunix/scanarr/internal/conflict"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/pkg/parse"
)

// ErrScanInProgress is returned when a scan is triggered while another scan
// over the folder set is still running. The second trigger is rejected, not
// queued: overlapping scans could race on conflict dedup and upsert order.
var ErrScanInProgress = errors.New("scan already in progress")

// DefaultExtensions is the extension whitelist used when none is configured.
var DefaultExtensions = []string{"mkv", "mp4", "avi", "m4v", "mov"}

// Config holds scanner configuration.
type Config struct {
	Extensions []string
}

// Scanner drives the ingestion pipeline.
type Scanner struct {
	catalog    *catalog.Store
	conflicts  *conflict.Store
	metadata   MetadataProvider
	bus        *events.Bus
	extensions map[string]bool
	log        *slog.Logger
	scanning   atomic.Bool
}

// New creates a scanner.
func New(cat *catalog.Store, conf *conflict.Store, provider MetadataProvider, bus *events.Bus, cfg Config, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return &Scanner{
		catalog:    cat,
		conflicts:  conf,
		metadata:   provider,
		bus:        bus,
		extensions: extSet,
		log:        log,
	}
}

// Summary is the outcome of one scan run.
type Summary struct {
	RunID     string
	Files     int
	Matched   int
	Conflicts int
	Skipped   int
	Errors    int
	Started   time.Time
	Finished  time.Time
}

// Start begins a scan in the background and returns immediately.
// Returns ErrScanInProgress if a scan is already running.
func (s *Scanner) Start(ctx context.Context) error {
	if !s.scanning.CompareAndSwap(false, true) {
		return ErrScanInProgress
	}
	go func() {
		defer s.scanning.Store(false)
		s.run(ctx)
	}()
	return nil
}

// ScanAll runs a full scan synchronously.
// Returns ErrScanInProgress if a scan is already running.
func (s *Scanner) ScanAll(ctx context.Context) (*Summary, error) {
	if !s.scanning.CompareAndSwap(false, true) {
		return nil, ErrScanInProgress
	}
	defer s.scanning.Store(false)
	return s.run(ctx), nil
}

// Scanning reports whether a scan is currently running.
func (s *Scanner) Scanning() bool {
	return s.scanning.Load()
}

// run walks every active folder: movie folders first, then series folders.
// Folders and files are processed sequentially to keep pressure off the
// rate-limited metadata catalog.
func (s *Scanner) run(ctx context.Context) *Summary {
	sum := &Summary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	log := s.log.With("run_id", sum.RunID)
	log.Info("scan started")

	folders, err := s.catalog.ListFolders(catalog.FolderFilter{ActiveOnly: true})
	if err != nil {
		log.Error("list folders failed", "error", err)
		sum.Errors++
		sum.Finished = time.Now()
		return sum
	}

	for _, kind := range []catalog.FolderKind{catalog.FolderMovies, catalog.FolderSeries} {
		for _, folder := range folders {
			if folder.Kind != kind {
				continue
			}
			if err := s.scanFolder(ctx, folder, sum, log); err != nil {
				// Enumeration failure aborts this folder only.
				log.Error("folder scan failed", "path", folder.Path, "error", err)
				sum.Errors++
			}
		}
	}

	sum.Finished = time.Now()
	log.Info("scan finished",
		"files", sum.Files,
		"matched", sum.Matched,
		"conflicts", sum.Conflicts,
		"skipped", sum.Skipped,
		"errors", sum.Errors,
		"duration_ms", sum.Finished.Sub(sum.Started).Milliseconds(),
	)

	if s.bus != nil {
		s.bus.Publish(events.NewScanCompleted(sum.RunID, sum.Files, sum.Matched, sum.Conflicts, sum.Skipped, sum.Errors))
	}
	return sum
}

func (s *Scanner) scanFolder(ctx context.Context, folder *catalog.Folder, sum *Summary, log *slog.Logger) error {
	files, err := s.collectFiles(folder.Path)
	if err != nil {
		return fmt.Errorf("enumerate %s: %w", folder.Path, err)
	}

	for _, path := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sum.Files++

		var perr error
		switch folder.Kind {
		case catalog.FolderMovies:
			perr = s.processMovieFile(ctx, path, sum)
		case catalog.FolderSeries:
			perr = s.processEpisodeFile(ctx, path, sum)
		}
		if perr != nil {
			// Per-file failure isolation: log and continue with the next file.
			log.Error("file processing failed", "path", path, "error", perr)
			sum.Errors++
		}
	}
	return nil
}

// collectFiles recursively enumerates files under root whose extension is
// whitelisted. Inclusion is purely by extension.
func (s *Scanner) collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if s.extensions[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// processMovieFile runs one file through the movie path:
// parse -> search -> classify (conflict or sync).
func (s *Scanner) processMovieFile(ctx context.Context, path string, sum *Summary) error {
	parsed, ok := parse.ParseMovie(path)
	if !ok {
		// Unparseable files are noise, not conflicts.
		sum.Skipped++
		return nil
	}

	candidates, err := s.metadata.SearchMovie(ctx, parsed.Title, parsed.Year)
	if err != nil {
		return fmt.Errorf("search movie %q: %w", parsed.Title, err)
	}

	if len(candidates) == 1 {
		if err := s.syncMovie(ctx, candidates[0].ID, parsed); err != nil {
			return err
		}
		sum.Matched++
		return nil
	}
	return s.recordConflict(conflict.MediaMovie, parsed.FilePath, parsed.FileName, parsed.Title, candidates, sum)
}

// processEpisodeFile runs one file through the episode path.
func (s *Scanner) processEpisodeFile(ctx context.Context, path string, sum *Summary) error {
	parsed, ok := parse.ParseEpisode(path)
	if !ok {
		sum.Skipped++
		return nil
	}

	candidates, err := s.metadata.SearchSeries(ctx, parsed.SeriesName)
	if err != nil {
		return fmt.Errorf("search series %q: %w", parsed.SeriesName, err)
	}

	if len(candidates) == 1 {
		if err := s.syncEpisode(ctx, candidates[0].ID, parsed); err != nil {
			return err
		}
		sum.Matched++
		return nil
	}
	return s.recordConflict(conflict.MediaSeries, parsed.FilePath, parsed.FileName, parsed.SeriesName, candidates, sum)
}
