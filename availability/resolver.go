package availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/kzk-maeda/mcp-book-search/calil"
)

// Directory resolves an administrative area into library records.
type Directory interface {
	FetchLibraries(ctx context.Context, area calil.Area) ([]calil.Library, error)
}

// Checker drives the asynchronous availability check for one ISBN against a
// set of library systems.
type Checker interface {
	ResolveAvailability(ctx context.Context, isbn string, systemIDs []string) (calil.RawAvailability, error)
}

// Options configures a Resolver.
type Options struct {
	// Directory is the library directory client. Required.
	Directory Directory

	// Checker is the availability poller. Required.
	Checker Checker
}

// Resolver is the unified facade for one book availability resolution. The
// sequence is strictly ordered: directory lookup, poll, merge. The check
// endpoint accepts a batched system-ID list in one request, so there is no
// internal fan-out.
type Resolver struct {
	directory Directory
	checker   Checker
}

// New creates a new Resolver with the given options.
func New(opts Options) (*Resolver, error) {
	var missing []string
	if opts.Directory == nil {
		missing = append(missing, "Directory")
	}
	if opts.Checker == nil {
		missing = append(missing, "Checker")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s",
			calil.ErrConfiguration, strings.Join(missing, ", "))
	}
	return &Resolver{directory: opts.Directory, checker: opts.Checker}, nil
}

// SearchBookInArea resolves per-library lending availability of one ISBN
// across the libraries serving an area.
//
// Two empty-but-successful outcomes exist: an area served by zero libraries
// short-circuits before any poll, and a check payload with no data for the
// ISBN merges to zero entries. Both are real-world states (unserved area,
// untracked title), not failures. Every other downstream error propagates
// unchanged so the boundary layer can report the specific failure kind.
func (r *Resolver) SearchBookInArea(ctx context.Context, isbn string, area calil.Area) (Report, error) {
	if strings.TrimSpace(isbn) == "" {
		return Report{}, &calil.ValidationError{Field: "isbn", Message: "must not be empty"}
	}

	libraries, err := r.directory.FetchLibraries(ctx, area)
	if err != nil {
		return Report{}, err
	}
	if len(libraries) == 0 {
		return Report{ISBN: isbn, Entries: []Entry{}}, nil
	}

	raw, err := r.checker.ResolveAvailability(ctx, isbn, systemOrder(libraries))
	if err != nil {
		return Report{}, err
	}
	return Merge(raw, libraries, isbn), nil
}
