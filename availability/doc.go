// Package availability turns raw Calil check results into uniform per-library
// lending reports.
//
// Merge joins a settled check payload with the directory records fetched for
// the area. Resolver is the single entry point sequencing the whole
// resolution: directory lookup, availability polling, merge.
//
//	resolver, err := availability.New(availability.Options{
//	    Directory: client,
//	    Checker:   client,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := resolver.SearchBookInArea(ctx, "4299062647",
//	    calil.Area{Prefecture: "千葉県", City: "千葉市"})
package availability
