package strutil

import (
	"errors"
	"testing"
)

func TestCapitalizeFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"h", "H"},
		{"ßtraße", "SStraße"},
		{"❤️ ❤️", "❤️ ❤️"},
		{"éclair", "Éclair"},
	}

	for _, tc := range cases {
		got, err := CapitalizeFirst(tc.in)
		if err != nil {
			t.Fatalf("CapitalizeFirst(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("CapitalizeFirst(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCapitalizeFirstEmpty(t *testing.T) {
	if _, err := CapitalizeFirst(""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}
