package availability

import (
	"testing"

	"github.com/kzk-maeda/mcp-book-search/calil"
)

var chibaLibraries = []calil.Library{
	{LibraryID: "100420", Libkey: "中央", SystemID: "Chiba_Chiba", SystemName: "千葉県千葉市", Formal: "千葉市中央図書館"},
	{LibraryID: "100421", Libkey: "みやこ", SystemID: "Chiba_Chiba", SystemName: "千葉県千葉市", Formal: "千葉市みやこ図書館"},
	{LibraryID: "104999", Libkey: "本館", SystemID: "Chiba_Funabashi", SystemName: "千葉県船橋市", Formal: "船橋市中央図書館"},
}

func rawWith(systems map[string]calil.SystemAvailability) calil.RawAvailability {
	return calil.RawAvailability{
		Books: map[string]map[string]calil.SystemAvailability{
			"4299062647": systems,
		},
	}
}

func TestMerge_SingleUsableSystem(t *testing.T) {
	raw := rawWith(map[string]calil.SystemAvailability{
		"Chiba_Chiba": {
			Status:  calil.SystemStatusOK,
			Libkeys: []calil.LibkeyStatus{{Libkey: "中央", Status: "貸出可"}},
		},
	})
	libs := []calil.Library{
		{LibraryID: "100420", Libkey: "中央", SystemID: "Chiba_Chiba", SystemName: "千葉県千葉市", Formal: "千葉市中央図書館"},
	}

	report := Merge(raw, libs, "4299062647")

	if report.ISBN != "4299062647" {
		t.Errorf("expected isbn on report, got %q", report.ISBN)
	}
	if len(report.Entries) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", len(report.Entries))
	}
	entry := report.Entries[0]
	if entry.LendingStatus != StatusLoanable {
		t.Errorf("expected lendingStatus %q, got %q", StatusLoanable, entry.LendingStatus)
	}
	if entry.LibraryID != "100420" || entry.SystemID != "Chiba_Chiba" {
		t.Errorf("unexpected entry identity: %+v", entry)
	}
}

func TestMerge_ISBNAbsent(t *testing.T) {
	raw := calil.RawAvailability{Books: map[string]map[string]calil.SystemAvailability{}}

	report := Merge(raw, chibaLibraries, "4299062647")

	if report.Entries == nil {
		t.Fatal("expected non-nil empty entries")
	}
	if len(report.Entries) != 0 {
		t.Errorf("expected no entries for untracked ISBN, got %d", len(report.Entries))
	}
}

func TestMerge_SkipsUnusableSystems(t *testing.T) {
	for _, status := range []string{"Running", "Error", ""} {
		raw := rawWith(map[string]calil.SystemAvailability{
			"Chiba_Chiba": {
				Status:  status,
				Libkeys: []calil.LibkeyStatus{{Libkey: "中央", Status: "貸出可"}},
			},
		})

		report := Merge(raw, chibaLibraries, "4299062647")
		if len(report.Entries) != 0 {
			t.Errorf("status %q: expected system to be omitted, got %d entries", status, len(report.Entries))
		}
	}
}

func TestMerge_CacheIsUsable(t *testing.T) {
	raw := rawWith(map[string]calil.SystemAvailability{
		"Chiba_Chiba": {
			Status:  calil.SystemStatusCache,
			Libkeys: []calil.LibkeyStatus{{Libkey: "中央", Status: "貸出中"}},
		},
	})

	report := Merge(raw, chibaLibraries, "4299062647")
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 entry from cached system, got %d", len(report.Entries))
	}
}

func TestMerge_SkipsUnknownLibkeys(t *testing.T) {
	// Directory and check keys can disagree after area changes; the unmatched
	// key is dropped, the matched one survives.
	raw := rawWith(map[string]calil.SystemAvailability{
		"Chiba_Chiba": {
			Status: calil.SystemStatusOK,
			Libkeys: []calil.LibkeyStatus{
				{Libkey: "旧館", Status: "貸出可"},
				{Libkey: "中央", Status: "貸出可"},
			},
		},
	})

	report := Merge(raw, chibaLibraries, "4299062647")
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(report.Entries))
	}
	if report.Entries[0].Libkey != "中央" {
		t.Errorf("expected matched libkey, got %q", report.Entries[0].Libkey)
	}
}

func TestMerge_AbsentStatusBecomesUnknown(t *testing.T) {
	raw := rawWith(map[string]calil.SystemAvailability{
		"Chiba_Chiba": {
			Status:  calil.SystemStatusOK,
			Libkeys: []calil.LibkeyStatus{{Libkey: "中央", Status: ""}},
		},
	})

	report := Merge(raw, chibaLibraries, "4299062647")
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(report.Entries))
	}
	if report.Entries[0].LendingStatus != StatusUnknown {
		t.Errorf("expected %q fallback, got %q", StatusUnknown, report.Entries[0].LendingStatus)
	}
}

func TestMerge_ReserveURL(t *testing.T) {
	raw := rawWith(map[string]calil.SystemAvailability{
		"Chiba_Chiba": {
			Status:     calil.SystemStatusOK,
			ReserveURL: "https://example.com/reserve?isbn={isbn}&sys={systemid}&lib={libkey}",
			Libkeys: []calil.LibkeyStatus{
				{Libkey: "中央", Status: "貸出可"},
				{Libkey: "みやこ", Status: StatusNotHeld},
			},
		},
	})

	report := Merge(raw, chibaLibraries, "4299062647")
	if len(report.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(report.Entries))
	}

	want := "https://example.com/reserve?isbn=4299062647&sys=Chiba_Chiba&lib=中央"
	if report.Entries[0].ReserveURL != want {
		t.Errorf("expected expanded reserve URL %q, got %q", want, report.Entries[0].ReserveURL)
	}

	// Never a reservation link for a library that does not hold the title.
	if report.Entries[1].ReserveURL != "" {
		t.Errorf("expected no reserve URL for %q, got %q", StatusNotHeld, report.Entries[1].ReserveURL)
	}
}

func TestMerge_Ordering(t *testing.T) {
	// Systems follow directory order, libkeys follow payload order.
	raw := rawWith(map[string]calil.SystemAvailability{
		"Chiba_Funabashi": {
			Status:  calil.SystemStatusOK,
			Libkeys: []calil.LibkeyStatus{{Libkey: "本館", Status: "貸出可"}},
		},
		"Chiba_Chiba": {
			Status: calil.SystemStatusOK,
			Libkeys: []calil.LibkeyStatus{
				{Libkey: "みやこ", Status: "貸出中"},
				{Libkey: "中央", Status: "貸出可"},
			},
		},
	})

	report := Merge(raw, chibaLibraries, "4299062647")
	if len(report.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(report.Entries))
	}

	wantOrder := []string{"みやこ", "中央", "本館"}
	for i, want := range wantOrder {
		if report.Entries[i].Libkey != want {
			t.Errorf("position %d: expected libkey %q, got %q", i, want, report.Entries[i].Libkey)
		}
	}
}
