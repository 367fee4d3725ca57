package booking

import "testing"

func TestParseFacilityRef(t *testing.T) {
	cases := []struct {
		key  string
		want FacilityRef
	}{
		{"S1", FacilityRef{Parent: "S1"}},
		{"S1_2", FacilityRef{Parent: "S1", Sub: "2"}},
		{"C10_3", FacilityRef{Parent: "C10", Sub: "3"}},
		{"S1_2_extra", FacilityRef{Parent: "S1", Sub: "2_extra"}},
	}
	for _, tc := range cases {
		got := ParseFacilityRef(tc.key)
		if got != tc.want {
			t.Errorf("ParseFacilityRef(%q) = %+v, want %+v", tc.key, got, tc.want)
		}
		if got.Key() != tc.key {
			t.Errorf("Key() round-trip for %q gave %q", tc.key, got.Key())
		}
	}
	if ParseFacilityRef("S1").IsSubVenue() {
		t.Error("parent key reported as sub-venue")
	}
	if !ParseFacilityRef("S1_2").IsSubVenue() {
		t.Error("composite key not reported as sub-venue")
	}
}
