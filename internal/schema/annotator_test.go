package schema

import (
	"testing"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

func baseRecord() model.EventRecord {
	return model.EventRecord{
		Title:           "Senior Fitness Class",
		Description:     "Low-impact strength and balance.",
		StartDate:       time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Neighborhood:    "Ballard",
		EventType:       model.CategoryCommunityHub,
		LocationName:    "Community Center",
		RegistrationURL: "https://example.org/register",
		SourceURL:       "https://example.org/events",
		SourceName:      "Ballard Senior Center",
	}
}

func TestAnnotate_PhysicalEvent(t *testing.T) {
	ev := baseRecord()
	doc := Annotate(&ev)

	if doc["@type"] != "Event" || doc["name"] != ev.Title {
		t.Errorf("unexpected identity fields: %v %v", doc["@type"], doc["name"])
	}
	if doc["startDate"] != "2026-01-15T10:00:00Z" {
		t.Errorf("startDate = %v", doc["startDate"])
	}
	if doc["eventAttendanceMode"] != "https://schema.org/OfflineEventAttendanceMode" {
		t.Errorf("eventAttendanceMode = %v", doc["eventAttendanceMode"])
	}

	loc, ok := doc["location"].(map[string]interface{})
	if !ok || loc["@type"] != "Place" || loc["name"] != "Community Center" {
		t.Errorf("location = %v", doc["location"])
	}
	addr, ok := loc["address"].(map[string]interface{})
	if !ok || addr["addressLocality"] != "Ballard" {
		t.Errorf("address = %v", loc["address"])
	}
}

func TestAnnotate_VirtualEvent(t *testing.T) {
	ev := baseRecord()
	ev.IsVirtual = true
	doc := Annotate(&ev)

	if doc["eventAttendanceMode"] != "https://schema.org/OnlineEventAttendanceMode" {
		t.Errorf("eventAttendanceMode = %v", doc["eventAttendanceMode"])
	}
	loc, ok := doc["location"].(map[string]interface{})
	if !ok || loc["@type"] != "VirtualLocation" || loc["url"] != ev.RegistrationURL {
		t.Errorf("location = %v", doc["location"])
	}
}

func TestAnnotate_FreeOffer(t *testing.T) {
	ev := baseRecord()
	doc := Annotate(&ev)

	offer, ok := doc["offers"].(map[string]interface{})
	if !ok {
		t.Fatalf("offers = %v", doc["offers"])
	}
	if offer["price"] != "0" || offer["priceCurrency"] != "USD" {
		t.Errorf("offer = %v", offer)
	}
}

func TestAnnotate_ReflectsCurrentFields(t *testing.T) {
	ev := baseRecord()
	first := Annotate(&ev)

	ev.Description = "Updated description."
	second := Annotate(&ev)

	if first["description"] == second["description"] {
		t.Error("annotation not recomputed from current fields")
	}
	if second["description"] != "Updated description." {
		t.Errorf("description = %v", second["description"])
	}
}

func TestAnnotate_Organizer(t *testing.T) {
	ev := baseRecord()
	doc := Annotate(&ev)

	org, ok := doc["organizer"].(map[string]interface{})
	if !ok || org["name"] != ev.SourceName || org["url"] != ev.SourceURL {
		t.Errorf("organizer = %v", doc["organizer"])
	}
}
