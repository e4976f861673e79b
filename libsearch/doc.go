// Package libsearch ranks the library records of one area against free-text
// queries.
//
// The directory endpoint returns every branch serving a prefecture, which for
// large prefectures runs into the hundreds. Index holds those records in an
// in-memory bleve index keyed by position so a caller can ask for "the
// central library" or a ward name without knowing exact directory spelling.
//
// An Index is built per fetched directory and discarded with it; nothing is
// persisted across resolutions.
package libsearch
