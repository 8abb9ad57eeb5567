package application

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.November, 9, 15, 0, 0, 0, time.UTC)
	if got := FormatDate(day); got != "9 Nov, 2025" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestFilterByDate(t *testing.T) {
	t.Parallel()

	list := []Reservation{
		{ID: "a", Date: "19 Nov, 2025"},
		{ID: "b", Date: "1 Nov, 2025"},
		{ID: "c", Date: "11 Nov, 2025"},
		{ID: "d", Date: "Wed, 19 Nov, 2025"},
	}

	got := FilterByDate(list, time.Date(2025, time.November, 19, 0, 0, 0, 0, time.UTC))
	if diff := cmp.Diff([]Reservation{list[0], list[3]}, got); diff != "" {
		t.Fatalf("unexpected filter result (-want +got):\n%s", diff)
	}

	got = FilterByDate(list, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	if diff := cmp.Diff([]Reservation{list[1]}, got); diff != "" {
		t.Fatalf("single digit day matched too much (-want +got):\n%s", diff)
	}

	if got := FilterByDate(nil, time.Now()); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
