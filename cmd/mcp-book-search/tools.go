package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kzk-maeda/mcp-book-search/availability"
	"github.com/kzk-maeda/mcp-book-search/calil"
	"github.com/kzk-maeda/mcp-book-search/libsearch"
	"github.com/kzk-maeda/mcp-book-search/registry"
)

// maxReportEntries caps the serialized availability list. The engine returns
// everything; trimming for response size is a presentation concern that
// belongs here, not in the merger.
const maxReportEntries = 10

// bookSearcher is the slice of the resolver the tool handler needs.
type bookSearcher interface {
	SearchBookInArea(ctx context.Context, isbn string, area calil.Area) (availability.Report, error)
}

// libraryFetcher is the slice of the calil client the tool handler needs.
type libraryFetcher interface {
	FetchLibraries(ctx context.Context, area calil.Area) ([]calil.Library, error)
}

func registerTools(reg *registry.Registry, client libraryFetcher, resolver bookSearcher) error {
	if err := reg.Register(mcp.Tool{
		Name: "search_book_in_area",
		Description: "Check real-time lending availability of a book (by ISBN) " +
			"across the public libraries of a Japanese prefecture, optionally " +
			"narrowed to a city.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"isbn":       map[string]any{"type": "string", "description": "ISBN of the book"},
				"prefecture": map[string]any{"type": "string", "description": "Prefecture name, e.g. 千葉県"},
				"city":       map[string]any{"type": "string", "description": "Optional city name, e.g. 千葉市"},
			},
			"required": []string{"isbn", "prefecture"},
		},
	}, searchBookInAreaHandler(resolver)); err != nil {
		return err
	}

	return reg.Register(mcp.Tool{
		Name: "search_libraries",
		Description: "List the public libraries serving a Japanese prefecture " +
			"(optionally narrowed to a city), ranked by relevance to a free-text " +
			"query when one is given.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prefecture": map[string]any{"type": "string", "description": "Prefecture name"},
				"city":       map[string]any{"type": "string", "description": "Optional city name"},
				"query":      map[string]any{"type": "string", "description": "Optional free-text query over library names and addresses"},
				"limit":      map[string]any{"type": "integer", "description": "Maximum results, default 10"},
			},
			"required": []string{"prefecture"},
		},
	}, searchLibrariesHandler(client))
}

func searchBookInAreaHandler(resolver bookSearcher) registry.ToolHandler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		report, err := resolver.SearchBookInArea(ctx, stringArg(args, "isbn"), calil.Area{
			Prefecture: stringArg(args, "prefecture"),
			City:       stringArg(args, "city"),
		})
		if err != nil {
			return nil, err
		}
		if len(report.Entries) > maxReportEntries {
			report.Entries = report.Entries[:maxReportEntries]
		}
		return report, nil
	}
}

func searchLibrariesHandler(client libraryFetcher) registry.ToolHandler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		libs, err := client.FetchLibraries(ctx, calil.Area{
			Prefecture: stringArg(args, "prefecture"),
			City:       stringArg(args, "city"),
		})
		if err != nil {
			return nil, err
		}

		idx, err := libsearch.New(libs)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = idx.Close()
		}()

		ranked, err := idx.Search(stringArg(args, "query"), intArg(args, "limit"))
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"total":     len(libs),
			"libraries": libraryViews(ranked),
		}, nil
	}
}

// libraryView is the serialized shape of one directory record.
type libraryView struct {
	LibraryID  string `json:"libraryId"`
	SystemID   string `json:"systemId"`
	SystemName string `json:"systemName"`
	Formal     string `json:"formalName"`
	Short      string `json:"shortName"`
	Address    string `json:"address"`
	Post       string `json:"postalCode"`
	Tel        string `json:"phone"`
	URL        string `json:"url,omitempty"`
}

func libraryViews(libs []calil.Library) []libraryView {
	views := make([]libraryView, 0, len(libs))
	for _, lib := range libs {
		views = append(views, libraryView{
			LibraryID:  lib.LibraryID,
			SystemID:   lib.SystemID,
			SystemName: lib.SystemName,
			Formal:     lib.Formal,
			Short:      lib.Short,
			Address:    lib.Address,
			Post:       lib.Post,
			Tel:        lib.Tel,
			URL:        lib.URL,
		})
	}
	return views
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// intArg tolerates the float64 that JSON numbers decode to.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
