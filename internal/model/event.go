package model

import (
	"strings"
	"time"
)

// EventCategory classifies an event for directory pages
type EventCategory string

const (
	CategoryCommunityHub    EventCategory = "community-hub"
	CategoryMedicalWellness EventCategory = "medical-wellness"
	CategoryLuxuryShowcase  EventCategory = "luxury-showcase"
)

// EventRecord is the persisted event entity. The pair (Title, StartDate)
// is the natural key: writes are upserts on it, so repeated discovery of
// the same event converges to one row.
type EventRecord struct {
	Title           string                 `json:"title" bson:"title"`
	Description     string                 `json:"description" bson:"description"`
	StartDate       time.Time              `json:"start_date" bson:"start_date"`
	Neighborhood    string                 `json:"neighborhood" bson:"neighborhood"`
	EventType       EventCategory          `json:"event_type" bson:"event_type"`
	LocationName    string                 `json:"location_name,omitempty" bson:"location_name,omitempty"`
	RegistrationURL string                 `json:"registration_url,omitempty" bson:"registration_url,omitempty"`
	SourceURL       string                 `json:"source_url" bson:"source_url"`
	SourceName      string                 `json:"source_name" bson:"source_name"`
	IsVirtual       bool                   `json:"is_virtual" bson:"is_virtual"`
	Schema          map[string]interface{} `json:"schema_annotation,omitempty" bson:"schema_annotation,omitempty"`
	UpdatedAt       time.Time              `json:"updated_at" bson:"updated_at"`
}

// NaturalKey returns the normalized (title, start date) identity used for
// upserts and intra-run duplicate suppression.
func (e *EventRecord) NaturalKey() string {
	return strings.ToLower(strings.TrimSpace(e.Title)) + "|" + e.StartDate.UTC().Format(time.RFC3339)
}

// RawContent is a plain-text rendering of one source page, consumed by the
// extractor and discarded afterwards.
type RawContent struct {
	SourceName string
	SourceURL  string
	Body       string
	FetchedAt  time.Time
}

// SourceResult holds per-source counts for one pipeline run
type SourceResult struct {
	SourceName string `json:"source_name"`
	Found      int    `json:"found"`
	Upserted   int    `json:"upserted"`
	Error      string `json:"error,omitempty"`
}

// RunSummary aggregates a full pipeline run
type RunSummary struct {
	StartedAt        time.Time      `json:"started_at"`
	Duration         time.Duration  `json:"duration"`
	SourcesAttempted int            `json:"sources_attempted"`
	EventsFound      int            `json:"events_found"`
	EventsUpserted   int            `json:"events_upserted"`
	SourcesWithError int            `json:"sources_with_error"`
	Sources          []SourceResult `json:"sources"`
}

// Add records one source's outcome into the summary
func (s *RunSummary) Add(r SourceResult) {
	s.SourcesAttempted++
	s.EventsFound += r.Found
	s.EventsUpserted += r.Upserted
	if r.Error != "" {
		s.SourcesWithError++
	}
	s.Sources = append(s.Sources, r)
}
