// Package normalize converts recognized fragments into canonical
// EventRecords, assigning classification and discarding invalid entries.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/silverhaven/eventscout/internal/extract"
	"github.com/silverhaven/eventscout/internal/model"
	"github.com/silverhaven/eventscout/internal/source"
)

// virtualKeywords mark an event as attended online
var virtualKeywords = []string{
	"virtual", "online", "webinar", "zoom", "livestream", "live stream",
	"microsoft teams", "google meet",
}

// medicalKeywords promote a community event to medical-wellness when a
// health institution or clinical topic shows up in the text.
var medicalKeywords = []string{
	"medical center", "hospital", "clinic", "health screening",
	"memory care", "alzheimer", "dementia", "medicare", "wellness check",
	"blood pressure", "fall prevention",
}

// Normalizer maps fragments to EventRecords. It caps output per source so
// one noisy page cannot flood a run.
type Normalizer struct {
	maxPerSource  int
	neighborhoods []string
	now           func() time.Time
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithClock overrides the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// New creates a Normalizer. knownNeighborhoods lets extracted location
// text override the source's default neighborhood label when it names one.
func New(maxPerSource int, knownNeighborhoods []string, opts ...Option) *Normalizer {
	if maxPerSource <= 0 {
		maxPerSource = 20
	}
	n := &Normalizer{
		maxPerSource:  maxPerSource,
		neighborhoods: knownNeighborhoods,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize builds EventRecords from the fragments of one source
func (n *Normalizer) Normalize(src source.Descriptor, fragments []extract.Fragment) []model.EventRecord {
	var records []model.EventRecord

	for _, frag := range fragments {
		if len(records) >= n.maxPerSource {
			break
		}

		title := strings.TrimSpace(frag.Title)
		if title == "" || frag.Start.IsZero() {
			continue
		}

		blob := strings.ToLower(title + " " + frag.Description + " " + frag.LocationName)

		rec := model.EventRecord{
			Title:           title,
			Description:     frag.Description,
			StartDate:       frag.Start.UTC(),
			Neighborhood:    n.neighborhood(src, frag.LocationName),
			EventType:       categorize(src.Category, blob),
			LocationName:    frag.LocationName,
			RegistrationURL: frag.RegistrationURL,
			SourceURL:       src.URL,
			SourceName:      src.Name,
			IsVirtual:       containsAny(blob, virtualKeywords),
			UpdatedAt:       n.now().UTC(),
		}

		if rec.RegistrationURL == "" {
			rec.RegistrationURL = src.URL
		}
		if rec.LocationName == "" && !rec.IsVirtual {
			rec.LocationName = src.Name
		}
		if rec.Description == "" {
			rec.Description = synthesizeDescription(src)
		}

		records = append(records, rec)
	}

	return records
}

// neighborhood keeps the source default unless the extracted location text
// names a known neighborhood.
func (n *Normalizer) neighborhood(src source.Descriptor, locationText string) string {
	if locationText != "" {
		lower := strings.ToLower(locationText)
		for _, hood := range n.neighborhoods {
			if hood != "" && strings.Contains(lower, strings.ToLower(hood)) {
				return hood
			}
		}
	}
	return src.Neighborhood
}

// categorize promotes community events to medical-wellness when clinical
// signals are present; otherwise the source's classification stands.
func categorize(base model.EventCategory, blob string) model.EventCategory {
	if base == model.CategoryCommunityHub && containsAny(blob, medicalKeywords) {
		return model.CategoryMedicalWellness
	}
	return base
}

func containsAny(blob string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}

func synthesizeDescription(src source.Descriptor) string {
	label := "community"
	switch src.Category {
	case model.CategoryMedicalWellness:
		label = "health and wellness"
	case model.CategoryLuxuryShowcase:
		label = "senior living showcase"
	}
	return fmt.Sprintf("A %s event hosted by %s.", label, src.Name)
}
