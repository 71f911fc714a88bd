package errors

import (
	"math"
	"regexp"
	"unicode"
)

// markerIDRegex matches marker identifiers usable in URLs and DOT output.
var markerIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateMarkerID checks a marker id from a scene file or request. Ids are
// 1 to 128 characters of letters, digits, and . _ : -, starting with a letter
// or digit, since they end up in URL paths and DOT node names.
func ValidateMarkerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMarkerID, "marker id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidMarkerID, "marker id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMarkerID, "marker id contains invalid control characters")
		}
	}

	if !markerIDRegex.MatchString(id) {
		return New(ErrCodeInvalidMarkerID, "invalid marker id: %q", id)
	}

	return nil
}

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative rejects negative or non-finite values for the named field.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be non-negative, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects zero, negative, or non-finite values for the named field.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateLatLng checks that a coordinate lies within geographic bounds.
func ValidateLatLng(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return New(ErrCodeInvalidScene, "coordinates must be finite")
	}
	if lat < -90 || lat > 90 {
		return New(ErrCodeInvalidScene, "latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return New(ErrCodeInvalidScene, "longitude %v out of range [-180, 180]", lng)
	}
	return nil
}
