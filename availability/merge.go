package availability

import (
	"strings"

	"github.com/kzk-maeda/mcp-book-search/calil"
)

// Merge joins a settled check payload with the directory records fetched for
// the area into one entry per library holding the title.
//
// A payload with no data for the ISBN yields an empty report. Systems whose
// status is outside {OK, Cache} are omitted entirely; their data is not yet
// trustworthy and is never guessed at. Library keys with no matching
// directory record are skipped: directory and check-API keys can disagree
// after area changes, which is expected, not exceptional.
func Merge(raw calil.RawAvailability, libraries []calil.Library, isbn string) Report {
	report := Report{ISBN: isbn, Entries: []Entry{}}

	systems, ok := raw.Books[isbn]
	if !ok {
		return report
	}

	for _, systemID := range systemOrder(libraries) {
		sys, ok := systems[systemID]
		if !ok {
			continue
		}
		if sys.Status != calil.SystemStatusOK && sys.Status != calil.SystemStatusCache {
			continue
		}

		for _, lk := range sys.Libkeys {
			lib, ok := findLibrary(libraries, systemID, lk.Libkey)
			if !ok {
				continue
			}

			status := lk.Status
			if status == "" {
				// The library itself is confirmed to exist; report it as
				// unknown rather than dropping it.
				status = StatusUnknown
			}

			entry := Entry{
				LibraryID:     lib.LibraryID,
				Libkey:        lk.Libkey,
				SystemID:      systemID,
				SystemName:    lib.SystemName,
				Library:       lib.Formal,
				LendingStatus: status,
			}
			if sys.ReserveURL != "" && status != StatusNotHeld {
				entry.ReserveURL = expandReserveURL(sys.ReserveURL, isbn, systemID, lk.Libkey)
			}
			report.Entries = append(report.Entries, entry)
		}
	}
	return report
}

// systemOrder returns the distinct system IDs in the order the directory
// returned them, which fixes the system order of the report.
func systemOrder(libraries []calil.Library) []string {
	ids := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		ids = append(ids, lib.SystemID)
	}
	return calil.DedupeSystemIDs(ids)
}

func findLibrary(libraries []calil.Library, systemID, libkey string) (calil.Library, bool) {
	for _, lib := range libraries {
		if lib.SystemID == systemID && lib.Libkey == libkey {
			return lib, true
		}
	}
	return calil.Library{}, false
}

// expandReserveURL substitutes the placeholders verbatim. URLs without
// placeholders pass through unchanged.
func expandReserveURL(template, isbn, systemID, libkey string) string {
	return strings.NewReplacer(
		"{isbn}", isbn,
		"{systemid}", systemID,
		"{libkey}", libkey,
	).Replace(template)
}
