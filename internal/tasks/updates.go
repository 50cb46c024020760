package tasks

import (
	"fmt"

	"github.com/sablewood/rymx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParsePages Phase = iota
	SearchCatalog
	ExpandAlbum
	CacheLookup
	CreateList
	AppendTracks
)

func (p Phase) String() string {
	switch p {
	case ParsePages:
		return "parse_pages"
	case SearchCatalog:
		return "search_catalog"
	case ExpandAlbum:
		return "expand_album"
	case CacheLookup:
		return "cache_lookup"
	case CreateList:
		return "create_list"
	case AppendTracks:
		return "append_tracks"
	default:
		return ""
	}
}

func searchEntryUpdate(step, total int, entry models.Entry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, entry.Artist, entry.Title),
	}
}

func matchedUpdate(step, total int, entry models.Entry, uris int, artistScore, titleScore float64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s (%d URIs, artist %.0f%%, title %.0f%%)", step, total, entry.Artist, entry.Title, uris, artistScore*100, titleScore*100),
	}
}

func noMatchUpdate(step, total int, entry models.Entry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: below similarity threshold", step, total, entry.Artist, entry.Title),
	}
}

func entryFailedUpdate(step, total int, entry models.Entry, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, entry.Artist, entry.Title, err),
	}
}

func cacheHitUpdate(step, total int, entry models.Entry, uris int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheLookup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s (cached, %d URIs)", step, total, entry.Artist, entry.Title, uris),
	}
}

func expandAlbumUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExpandAlbum,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Expanding album: %s...", name),
	}
}

func createListUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateList,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func creatingListUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateList,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q...", name),
	}
}

func appendUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AppendTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Appending %d tracks...", step, total, count),
	}
}
