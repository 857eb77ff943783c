package validation

import (
	"strings"
	"testing"
)

type testPoint struct {
	ID        string   `validate:"required,waypointid"`
	Longitude *float64 `validate:"required,gte=-180,lte=180"`
	Latitude  *float64 `validate:"required,gte=-90,lte=90"`
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		point     *testPoint
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "valid point",
			point: &testPoint{ID: "wp-1", Longitude: floatPtr(-73.5), Latitude: floatPtr(45.5)},
		},
		{
			name:      "missing id",
			point:     &testPoint{Longitude: floatPtr(0), Latitude: floatPtr(0)},
			wantErr:   true,
			errSubstr: "ID: field is required",
		},
		{
			name:      "missing longitude",
			point:     &testPoint{ID: "a", Latitude: floatPtr(0)},
			wantErr:   true,
			errSubstr: "Longitude: field is required",
		},
		{
			name:      "zero coordinates are present",
			point:     &testPoint{ID: "a", Longitude: floatPtr(0), Latitude: floatPtr(0)},
			wantErr:   false,
			errSubstr: "",
		},
		{
			name:      "latitude out of range",
			point:     &testPoint{ID: "a", Longitude: floatPtr(0), Latitude: floatPtr(91)},
			wantErr:   true,
			errSubstr: "must not exceed 90",
		},
		{
			name:      "bad id characters",
			point:     &testPoint{ID: "a b", Longitude: floatPtr(0), Latitude: floatPtr(0)},
			wantErr:   true,
			errSubstr: "invalid identifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.point)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Struct() error = %q, want substring %q", err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestValidateWaypointID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"wp_1", false},
		{"L2:elevator-3", false},
		{"floor.1", false},
		{"", true},
		{"has space", true},
		{"semi;colon", true},
		{strings.Repeat("a", MaxWaypointIDLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateWaypointID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWaypointID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
