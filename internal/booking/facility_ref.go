package booking

import "strings"

// FacilityRef identifies either a parent facility ("S1") or one of its
// sub-venues ("S1_2"). The composite key is split once here; the rest of the
// code works with the parsed form instead of re-inspecting strings.
type FacilityRef struct {
	Parent string
	Sub    string // empty for a parent facility
}

func ParseFacilityRef(key string) FacilityRef {
	parent, sub, found := strings.Cut(key, "_")
	if !found {
		return FacilityRef{Parent: key}
	}
	return FacilityRef{Parent: parent, Sub: sub}
}

func (r FacilityRef) IsSubVenue() bool {
	return r.Sub != ""
}

// Key returns the composite key as stored on reservations.
func (r FacilityRef) Key() string {
	if r.Sub == "" {
		return r.Parent
	}
	return r.Parent + "_" + r.Sub
}
