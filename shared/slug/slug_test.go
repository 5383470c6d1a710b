package slug_test

import (
	"strings"
	"testing"
	"villa/shared/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Sunset at the Villa", want: "sunset-at-the-villa"},
		{title: "  Café & Crème brûlée!  ", want: "cafe-creme-brulee"},
		{title: "Top 10 beaches -- 2025", want: "top-10-beaches-2025"},
		{title: "???", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := slug.Make(tt.title); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMakeTruncates(t *testing.T) {
	got := slug.Make(strings.Repeat("word ", 60))

	if len(got) > 120 {
		t.Errorf("expected at most 120 characters, got %d", len(got))
	}

	if strings.HasSuffix(got, "-") {
		t.Errorf("expected no trailing hyphen, got %q", got)
	}
}

func TestValid(t *testing.T) {
	if !slug.Valid("sunset-at-the-villa") {
		t.Error("expected slug to be valid")
	}

	if slug.Valid("Sunset at the Villa") {
		t.Error("expected title not to be a valid slug")
	}

	if slug.Valid("") {
		t.Error("expected empty slug to be invalid")
	}
}
