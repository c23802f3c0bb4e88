package utils

import (
	"strconv"
	"strings"
)

// ParseCoordinate parses a latitude or longitude delivered as a string by the
// catalog API. Returns nil when the value is absent or not a valid number.
func ParseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &val
}

// ParsePoint parses a latitude/longitude string pair. A venue only gets a
// geographic point when both coordinates parse; a half point is useless for
// distance search, so anything less yields (nil, nil).
func ParsePoint(lat, lon string) (*float64, *float64) {
	latVal := ParseCoordinate(lat)
	lonVal := ParseCoordinate(lon)
	if latVal == nil || lonVal == nil {
		return nil, nil
	}
	if *latVal < -90 || *latVal > 90 || *lonVal < -180 || *lonVal > 180 {
		return nil, nil
	}
	return latVal, lonVal
}
