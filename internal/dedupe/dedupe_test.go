package dedupe

import (
	"testing"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

func event(title string) model.EventRecord {
	return model.EventRecord{
		Title:     title,
		StartDate: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCollapse_CaseInsensitiveTitles(t *testing.T) {
	events := []model.EventRecord{
		event("Senior Fitness Class"),
		event("SENIOR FITNESS CLASS"),
		event("Bingo Night"),
	}

	kept := Collapse(events)
	if len(kept) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(kept))
	}
	// First occurrence wins
	if kept[0].Title != "Senior Fitness Class" {
		t.Errorf("kept[0].Title = %q", kept[0].Title)
	}
}

func TestCollapse_TruncatedHeadingPrefix(t *testing.T) {
	events := []model.EventRecord{
		event("Senior Fitness Class at the Community Center"),
		event("Senior Fitness"),
		event("Watercolor Workshop"),
	}

	kept := Collapse(events)
	if len(kept) != 2 {
		t.Fatalf("Expected prefix near-duplicates to collapse, got %d events", len(kept))
	}
}

func TestCollapse_ShortTitlesNeedExactMatch(t *testing.T) {
	events := []model.EventRecord{
		event("Bingo"),
		event("Bios"), // shares only 3 chars, below the prefix guard
	}

	if kept := Collapse(events); len(kept) != 2 {
		t.Errorf("Expected 2 distinct short titles, got %d", len(kept))
	}
}

func TestCollapse_Empty(t *testing.T) {
	if kept := Collapse(nil); len(kept) != 0 {
		t.Errorf("Collapse(nil) = %v", kept)
	}
}

func TestRecent_SeenWithinTTL(t *testing.T) {
	r := NewRecent(10, time.Minute)

	ev := event("Senior Fitness Class")
	digest := Digest(&ev)

	if r.Seen(digest) {
		t.Error("Seen before Mark")
	}
	r.Mark(digest)
	if !r.Seen(digest) {
		t.Error("not Seen after Mark")
	}

	// A field change yields a different digest, so the changed record
	// is written even while the old digest is still cached.
	changed := ev
	changed.Description = "now with refreshments"
	if r.Seen(Digest(&changed)) {
		t.Error("changed record reported as seen")
	}
}

func TestRecent_Eviction(t *testing.T) {
	r := NewRecent(2, time.Minute)
	r.Mark("a")
	r.Mark("b")
	r.Mark("c") // evicts a

	if r.Seen("a") {
		t.Error("evicted key still seen")
	}
	if !r.Seen("b") || !r.Seen("c") {
		t.Error("recent keys evicted prematurely")
	}
}

func TestRecent_NilAndDisabled(t *testing.T) {
	var r *Recent
	r.Mark("x")
	if r.Seen("x") {
		t.Error("nil Recent reported seen")
	}

	disabled := NewRecent(10, 0)
	disabled.Mark("x")
	if disabled.Seen("x") {
		t.Error("zero-TTL Recent reported seen")
	}
}
