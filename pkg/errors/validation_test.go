package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateMarkerID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "cafe", false},
		{"valid with dash", "bus-stop-4", false},
		{"valid with colon", "poi:12", false},
		{"valid with dot", "a.b", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"leading dash", "-a", true},
		{"space", "a b", true},
		{"slash", "a/b", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarkerID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMarkerID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidMarkerID) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidMarkerID)
			}
		})
	}
}

func TestValidateNumbers(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string, float64) error
		v       float64
		wantErr bool
	}{
		{"finite ok", ValidateFinite, -3, false},
		{"finite nan", ValidateFinite, math.NaN(), true},
		{"finite inf", ValidateFinite, math.Inf(1), true},
		{"non-negative zero", ValidateNonNegative, 0, false},
		{"non-negative negative", ValidateNonNegative, -0.5, true},
		{"positive zero", ValidatePositive, 0, true},
		{"positive ok", ValidatePositive, 11, false},
		{"positive inf", ValidatePositive, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn("field", tt.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateLatLng(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		wantErr  bool
	}{
		{"origin", 0, 0, false},
		{"london", 51.5074, -0.1278, false},
		{"corner", -90, 180, false},
		{"lat too big", 91, 0, true},
		{"lng too small", 0, -181, true},
		{"nan", math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatLng(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLatLng(%v, %v) error = %v, wantErr %v", tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}
