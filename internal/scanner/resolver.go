package scanner

import (
	"context"
	"fmt"

	"github.com/vmunix/scanarr/internal/conflict"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/pkg/parse"
)

// Resolve applies a human's choice to a conflict. It re-enters the same
// catalog sync path a direct single-match scan would have taken: fetch full
// details for the selected id, re-parse the original path for file-technical
// fields, and upsert. The conflict is marked resolved only after the catalog
// write succeeds, so a failed resolution leaves the conflict open.
// Returns conflict.ErrNotFound if the conflict id does not exist.
func (s *Scanner) Resolve(ctx context.Context, conflictID, selectedID int64) error {
	c, err := s.conflicts.Get(conflictID)
	if err != nil {
		return err
	}

	switch c.MediaType {
	case conflict.MediaMovie:
		parsed, ok := parse.ParseMovie(c.FilePath)
		if !ok {
			// A no-match conflict still parsed once; fall back to bare file facts.
			parsed = &parse.Movie{FilePath: c.FilePath, FileName: c.FileName}
		}
		if err := s.syncMovie(ctx, selectedID, parsed); err != nil {
			return err
		}
	case conflict.MediaSeries:
		parsed, ok := parse.ParseEpisode(c.FilePath)
		if !ok {
			return fmt.Errorf("cannot parse season/episode from %s", c.FilePath)
		}
		if err := s.syncEpisode(ctx, selectedID, parsed); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown media type %q", c.MediaType)
	}

	if _, err := s.conflicts.Resolve(conflictID, selectedID); err != nil {
		return err
	}

	s.log.Info("conflict resolved", "conflict_id", conflictID, "selected_id", selectedID)
	if s.bus != nil {
		s.bus.Publish(events.NewConflictResolved(conflictID, selectedID))
	}
	return nil
}
