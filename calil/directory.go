package calil

import (
	"context"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// FetchLibraries resolves an area into the library branches serving it.
//
// When area.City is set, the result is additionally narrowed client-side to
// records whose address contains the city name. The upstream city filter is
// not guaranteed exact, so this is best-effort narrowing, not an exact-match
// guarantee.
func (c *Client) FetchLibraries(ctx context.Context, area Area) ([]Library, error) {
	if strings.TrimSpace(area.Prefecture) == "" {
		return nil, &ValidationError{Field: "prefecture", Message: "must not be empty"}
	}

	q := url.Values{}
	q.Set("appkey", c.config.AppKey)
	q.Set("format", "json")
	q.Set("pref", area.Prefecture)
	if area.City != "" {
		q.Set("city", area.City)
	}

	body, err := c.get(ctx, "/library", q)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(body)
	if err != nil {
		return nil, err
	}

	libs := normalizeLibraries(doc)
	if area.City != "" {
		libs = filterByCity(libs, area.City)
	}
	c.logf("calil: directory pref=%s city=%s libraries=%d", area.Prefecture, area.City, len(libs))
	return libs, nil
}

// normalizeLibraries accepts both upstream response shapes: a flat array of
// records, or an object keyed by system ID whose values map libkey to record.
// Downstream code only ever sees []Library.
func normalizeLibraries(doc gjson.Result) []Library {
	var libs []Library
	switch {
	case doc.IsArray():
		doc.ForEach(func(_, rec gjson.Result) bool {
			libs = append(libs, libraryFromRecord(rec, "", ""))
			return true
		})
	case doc.IsObject():
		doc.ForEach(func(systemID, branches gjson.Result) bool {
			branches.ForEach(func(libkey, rec gjson.Result) bool {
				libs = append(libs, libraryFromRecord(rec, systemID.String(), libkey.String()))
				return true
			})
			return true
		})
	}
	return libs
}

// libraryFromRecord maps one upstream record onto Library. Missing optional
// fields become empty strings, except fax: the upstream treats an absent fax
// field and an empty one as different facts, so absence maps to the explicit
// FaxNotAvailable marker.
func libraryFromRecord(rec gjson.Result, systemID, libkey string) Library {
	lib := Library{
		LibraryID:  rec.Get("libid").String(),
		Libkey:     rec.Get("libkey").String(),
		SystemID:   rec.Get("systemid").String(),
		SystemName: rec.Get("systemname").String(),
		Formal:     rec.Get("formal").String(),
		Short:      rec.Get("short").String(),
		Address:    rec.Get("address").String(),
		Pref:       rec.Get("pref").String(),
		City:       rec.Get("city").String(),
		Post:       rec.Get("post").String(),
		Tel:        rec.Get("tel").String(),
		Geocode:    rec.Get("geocode").String(),
		Category:   rec.Get("category").String(),
		URL:        rec.Get("url_pc").String(),
	}
	if fax := rec.Get("fax"); fax.Exists() {
		lib.Fax = fax.String()
	} else {
		lib.Fax = FaxNotAvailable
	}
	if lib.SystemID == "" {
		lib.SystemID = systemID
	}
	if lib.Libkey == "" {
		lib.Libkey = libkey
	}
	return lib
}

func filterByCity(libs []Library, city string) []Library {
	filtered := make([]Library, 0, len(libs))
	for _, lib := range libs {
		if strings.Contains(lib.Address, city) {
			filtered = append(filtered, lib)
		}
	}
	return filtered
}
