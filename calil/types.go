package calil

// Area selects the administrative region to search. City is a refinement of
// Prefecture, not an independent key.
type Area struct {
	Prefecture string
	City       string
}

// FaxNotAvailable marks a directory record whose fax field was absent
// upstream. The upstream distinguishes absent from empty, so the marker must
// stay distinct from the empty string.
const FaxNotAvailable = "-"

// Library is one branch as returned by the directory endpoint. Records are
// immutable once fetched and live only for the duration of one resolution.
type Library struct {
	// LibraryID is the branch's globally unique ID (upstream "libid").
	LibraryID string

	// Libkey is the branch's key within its system. Check results report
	// lending status per libkey, so this joins the two endpoints.
	Libkey string

	// SystemID identifies the library system (shared catalog backend).
	SystemID string

	// SystemName is the system's display name.
	SystemName string

	// Formal is the branch's formal display name; Short the abbreviated one.
	Formal string
	Short  string

	Address string
	Pref    string
	City    string
	Post    string
	Tel     string

	// Fax is FaxNotAvailable when the upstream record had no fax field.
	Fax string

	Geocode  string
	Category string
	URL      string
}

// PollSession is the server-issued continuation handle of a check operation.
// Once Complete is true the session must not be polled again; the upstream
// behavior for polling a settled session is undefined.
type PollSession struct {
	Token    string
	Complete bool
}

// Per-system status values of a settled check. Anything outside these two
// means the system's data is not yet trustworthy.
const (
	SystemStatusOK    = "OK"
	SystemStatusCache = "Cache"
)

// LibkeyStatus is one branch's lending status code within a system's check
// result. Order matches the raw payload.
type LibkeyStatus struct {
	Libkey string
	Status string
}

// SystemAvailability is one system's slice of a check result.
type SystemAvailability struct {
	Status     string
	ReserveURL string
	Libkeys    []LibkeyStatus
}

// RawAvailability is the normalized payload of a settled check operation:
// ISBN to system ID to that system's availability data.
type RawAvailability struct {
	Books map[string]map[string]SystemAvailability
}
