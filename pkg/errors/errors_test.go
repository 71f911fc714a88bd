package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidConfig, "nearbyDistance must be positive, got %v", -1), "INVALID_CONFIG: nearbyDistance must be positive, got -1"},
		{Wrap(ErrCodeInvalidScene, cause, "decode %s", "plaza.toml"), "INVALID_SCENE: decode plaza.toml: unexpected EOF"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeFileNotFound, cause, "open")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestSentinelMatchesByCode(t *testing.T) {
	sentinel := New(ErrCodeProjectionNotReady, "projection not ready")
	other := New(ErrCodeProjectionNotReady, "different text")

	if !errors.Is(fmt.Errorf("click: %w", other), sentinel) {
		t.Error("same code should match sentinel")
	}
	if errors.Is(New(ErrCodeUnknownMarker, "x"), sentinel) {
		t.Error("different code matched sentinel")
	}
}

func TestIsWalksChain(t *testing.T) {
	inner := New(ErrCodeInvalidMarkerID, "invalid marker id %q", "a b")
	scene := Wrap(ErrCodeInvalidScene, inner, "marker 1")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"outer code", scene, ErrCodeInvalidScene, true},
		{"inner code", scene, ErrCodeInvalidMarkerID, true},
		{"absent code", scene, ErrCodeUnknownMarker, false},
		{"fmt wrapped", fmt.Errorf("load: %w", inner), ErrCodeInvalidMarkerID, true},
		{"joined", errors.Join(errors.New("a"), inner), ErrCodeInvalidMarkerID, true},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestOutermostCodeAndMessage(t *testing.T) {
	err := fmt.Errorf("plaza.toml: %w",
		Wrap(ErrCodeInvalidScene, New(ErrCodeInvalidMarkerID, "bad id"), "marker 3"))

	if got := GetCode(err); got != ErrCodeInvalidScene {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidScene)
	}
	if got := UserMessage(err); got != "marker 3" {
		t.Errorf("UserMessage = %q, want %q", got, "marker 3")
	}

	plain := errors.New("disk full")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(plain); got != "disk full" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}
