package utils

import "testing"

func TestParseCoordinate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "valid positive", raw: "40.7128", want: ptr(40.7128)},
		{name: "valid negative", raw: "-74.0060", want: ptr(-74.0060)},
		{name: "surrounding whitespace", raw: " 12.5 ", want: ptr(12.5)},
		{name: "empty string", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "not a number", raw: "north"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCoordinate(tc.raw)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("ParseCoordinate(%q) = %v, want %v", tc.raw, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("ParseCoordinate(%q) = %v, want %v", tc.raw, *got, *tc.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lat, lon string
		wantLat  *float64
		wantLon  *float64
	}{
		{name: "both valid", lat: "40.7128", lon: "-74.0060", wantLat: ptr(40.7128), wantLon: ptr(-74.0060)},
		{name: "missing longitude", lat: "40.7128", lon: ""},
		{name: "missing latitude", lat: "", lon: "-74.0060"},
		{name: "unparseable latitude", lat: "n/a", lon: "-74.0060"},
		{name: "latitude out of range", lat: "91", lon: "0"},
		{name: "longitude out of range", lat: "0", lon: "-181"},
		{name: "boundary values", lat: "90", lon: "180", wantLat: ptr(90.0), wantLon: ptr(180.0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon := ParsePoint(tc.lat, tc.lon)
			if (lat == nil) != (tc.wantLat == nil) || (lon == nil) != (tc.wantLon == nil) {
				t.Fatalf("ParsePoint(%q, %q) = (%v, %v)", tc.lat, tc.lon, lat, lon)
			}
			if lat != nil && (*lat != *tc.wantLat || *lon != *tc.wantLon) {
				t.Errorf("ParsePoint(%q, %q) = (%v, %v), want (%v, %v)",
					tc.lat, tc.lon, *lat, *lon, *tc.wantLat, *tc.wantLon)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }
