// Package calil is a client for the Calil (カーリル) library-inventory API.
//
// It covers the two endpoints the book search server needs:
//
//   - the library directory, resolving a prefecture (optionally narrowed to a
//     city) into the library branches serving it, and
//   - the availability check, an asynchronous check/poll operation resolving
//     per-branch lending status for an ISBN across a set of library systems.
//
// The check endpoint does not answer synchronously. The first request returns
// a session token and a continuation flag; Client.ResolveAvailability drives
// the wait-then-reissue cycle until the upstream reports completion or the
// round budget runs out.
//
// Both endpoints may answer with bare JSON or with a JSONP-style callback
// wrapper; Decode normalizes the two shapes before anything else looks at the
// payload.
//
// Example usage:
//
//	client, err := calil.New(calil.Config{AppKey: os.Getenv("CALIL_APPKEY")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	libs, err := client.FetchLibraries(ctx, calil.Area{Prefecture: "千葉県"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := client.ResolveAvailability(ctx, "4299062647", systemIDs(libs))
package calil
