package availability

// Lending status codes as reported per libkey by the check endpoint. The
// vocabulary is closed; anything the payload omits resolves to StatusUnknown.
const (
	StatusLoanable     = "貸出可"
	StatusInCollection = "蔵書あり"
	StatusOnSiteOnly   = "館内のみ"
	StatusCheckedOut   = "貸出中"
	StatusReserved     = "予約中"
	StatusPreparing    = "準備中"
	StatusClosed       = "休館中"
	StatusNotHeld      = "蔵書なし"
	StatusUnknown      = "不明"
)

// Entry is the resolved status of one library's copy of the ISBN.
type Entry struct {
	LibraryID  string `json:"libraryId"`
	Libkey     string `json:"libkey"`
	SystemID   string `json:"systemId"`
	SystemName string `json:"systemName"`
	Library    string `json:"library"`

	// LendingStatus is one of the status codes above.
	LendingStatus string `json:"lendingStatus"`

	// ReserveURL is set only when the system published a reservation URL and
	// the status does not mean "this library does not hold the title".
	ReserveURL string `json:"reserveUrl,omitempty"`
}

// Report is the engine's terminal output for one resolution. Entries follow
// directory system order, then raw payload order within each system. An empty
// Entries list is a legitimate outcome (unserved area or untracked title),
// not an error.
type Report struct {
	ISBN    string  `json:"isbn"`
	Entries []Entry `json:"entries"`
}
