package events

// Event type constants for catalog mutations and scan lifecycle.
const (
	TypeCatalogUpserted  = "catalog.upserted"
	TypeConflictCreated  = "conflict.created"
	TypeConflictResolved = "conflict.resolved"
	TypeScanCompleted    = "scan.completed"
)

// CatalogUpserted signals that a catalog entry was created or refreshed.
// Cache layers invalidate the named resource on receipt.
type CatalogUpserted struct {
	Meta
	Created bool `json:"created"`
}

// NewCatalogUpserted creates a CatalogUpserted event.
// entityType is "movie", "series" or "episode".
func NewCatalogUpserted(entityType string, entityID int64, created bool) CatalogUpserted {
	return CatalogUpserted{
		Meta:    newMeta(TypeCatalogUpserted, entityType, entityID),
		Created: created,
	}
}

// ConflictCreated signals a new or refreshed scanning conflict.
type ConflictCreated struct {
	Meta
	FilePath   string `json:"file_path"`
	Candidates int    `json:"candidates"`
}

// NewConflictCreated creates a ConflictCreated event.
func NewConflictCreated(conflictID int64, filePath string, candidates int) ConflictCreated {
	return ConflictCreated{
		Meta:       newMeta(TypeConflictCreated, "conflict", conflictID),
		FilePath:   filePath,
		Candidates: candidates,
	}
}

// ConflictResolved signals that a human resolved a conflict and the
// resulting catalog write completed.
type ConflictResolved struct {
	Meta
	SelectedID int64 `json:"selected_id"`
}

// NewConflictResolved creates a ConflictResolved event.
func NewConflictResolved(conflictID, selectedID int64) ConflictResolved {
	return ConflictResolved{
		Meta:       newMeta(TypeConflictResolved, "conflict", conflictID),
		SelectedID: selectedID,
	}
}

// ScanCompleted carries the summary of one finished scan run.
type ScanCompleted struct {
	Meta
	RunID     string `json:"run_id"`
	Files     int    `json:"files"`
	Matched   int    `json:"matched"`
	Conflicts int    `json:"conflicts"`
	Skipped   int    `json:"skipped"`
	Errors    int    `json:"errors"`
}

// NewScanCompleted creates a ScanCompleted event.
func NewScanCompleted(runID string, files, matched, conflicts, skipped, errored int) ScanCompleted {
	return ScanCompleted{
		Meta:      newMeta(TypeScanCompleted, "scan", 0),
		RunID:     runID,
		Files:     files,
		Matched:   matched,
		Conflicts: conflicts,
		Skipped:   skipped,
		Errors:    errored,
	}
}
