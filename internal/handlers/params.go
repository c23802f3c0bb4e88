package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit  = 20
	maxLimit      = 100
	defaultRadius = 50.0
	maxRadius     = 500.0
)

// parseLimit reads the limit query parameter, clamped to 1..100
func parseLimit(c *fiber.Ctx) (int, error) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > maxLimit {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
	}
	return limit, nil
}

// parseOffset reads the offset query parameter
func parseOffset(c *fiber.Ctx) (int, error) {
	offsetStr := c.Query("offset")
	if offsetStr == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("offset must be a non-negative integer")
	}
	return offset, nil
}

// parseLatLon reads and validates lat/lon query parameters. Both must be
// present together; returns ok=false when neither is given.
func parseLatLon(c *fiber.Ctx) (lat, lon float64, ok bool, err error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, false, fmt.Errorf("lat and lon must be provided together")
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false, fmt.Errorf("lat must be a number between -90 and 90")
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false, fmt.Errorf("lon must be a number between -180 and 180")
	}
	return lat, lon, true, nil
}

// parseRadiusMiles reads the radius query parameter in miles, 1..500
func parseRadiusMiles(c *fiber.Ctx) (float64, error) {
	radiusStr := c.Query("radius")
	if radiusStr == "" {
		return defaultRadius, nil
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil || radius < 1 || radius > maxRadius {
		return 0, fmt.Errorf("radius must be a number between 1 and %.0f", maxRadius)
	}
	return radius, nil
}

// parseDate reads an optional RFC 3339 date query parameter
func parseDate(c *fiber.Ctx, key string) (*time.Time, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC 3339 timestamp", key)
	}
	return &t, nil
}
