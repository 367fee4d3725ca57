package service

import (
	"testing"

	"campusbook/internal/db"
)

func TestValidateFacility(t *testing.T) {
	tests := []struct {
		name    string
		f       db.Facility
		wantErr bool
	}{
		{"minimal", db.Facility{Key: "S1", Name: "Sports Hall"}, false},
		{"with hours", db.Facility{Key: "S1", Name: "Sports Hall", OpenTime: "0800", CloseTime: "2200"}, false},
		{"missing key", db.Facility{Name: "Sports Hall"}, true},
		{"missing name", db.Facility{Key: "S1"}, true},
		{"bad open time", db.Facility{Key: "S1", Name: "Sports Hall", OpenTime: "8:00"}, true},
		{"bad close time", db.Facility{Key: "S1", Name: "Sports Hall", CloseTime: "22"}, true},
		{"open after close", db.Facility{Key: "S1", Name: "Sports Hall", OpenTime: "2200", CloseTime: "0800"}, true},
		{"open only", db.Facility{Key: "S1", Name: "Sports Hall", OpenTime: "0900"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFacility(&tt.f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateFacility(%+v) error = %v, wantErr %v", tt.f, err, tt.wantErr)
			}
		})
	}
}
