package store

import (
	"context"
	"testing"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

func record(title string, start time.Time, desc string) model.EventRecord {
	return model.EventRecord{Title: title, StartDate: start, Description: desc}
}

func TestMemory_UpsertConvergesOnNaturalKey(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	if _, err := m.Upsert(ctx, []model.EventRecord{record("Fitness Class", start, "first run")}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Upsert(ctx, []model.EventRecord{record("Fitness Class", start, "second run")}); err != nil {
		t.Fatal(err)
	}

	if m.Len() != 1 {
		t.Fatalf("Expected 1 row after two upserts of the same key, got %d", m.Len())
	}

	key := (&model.EventRecord{Title: "Fitness Class", StartDate: start}).NaturalKey()
	got, ok := m.Get(key)
	if !ok {
		t.Fatal("record not found under natural key")
	}
	if got.Description != "second run" {
		t.Errorf("Description = %q, want the latest run's fields", got.Description)
	}
}

func TestMemory_DistinctKeysAreDistinctRows(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	_, _ = m.Upsert(ctx, []model.EventRecord{
		record("Fitness Class", start, ""),
		record("Fitness Class", start.AddDate(0, 0, 7), ""), // same title, next week
		record("Bingo Night", start, ""),
	})

	if m.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", m.Len())
	}
}

func TestMemory_ListUpcoming(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _ = m.Upsert(ctx, []model.EventRecord{
		record("Past Event", now.AddDate(0, 0, -5), ""),
		record("Soon Event", now.AddDate(0, 0, 2), ""),
		record("Later Event", now.AddDate(0, 0, 30), ""),
	})

	events, err := m.ListUpcoming(ctx, now, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 future events, got %d", len(events))
	}
	if events[0].Title != "Soon Event" || events[1].Title != "Later Event" {
		t.Errorf("wrong order: %q, %q", events[0].Title, events[1].Title)
	}

	limited, _ := m.ListUpcoming(ctx, now, 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit to apply, got %d events", len(limited))
	}
}
