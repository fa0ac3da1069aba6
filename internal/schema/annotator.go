// Package schema derives a schema.org Event representation from each
// normalized record for downstream search and AEO markup.
package schema

import (
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

// Annotate is a pure function from record fields to a JSON-LD object. The
// pipeline recomputes it on every write so the annotation always reflects
// current field values.
func Annotate(ev *model.EventRecord) map[string]interface{} {
	doc := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Event",
		"name":        ev.Title,
		"description": ev.Description,
		"startDate":   ev.StartDate.UTC().Format(time.RFC3339),
		"organizer": map[string]interface{}{
			"@type": "Organization",
			"name":  ev.SourceName,
			"url":   ev.SourceURL,
		},
		"offers": map[string]interface{}{
			"@type":         "Offer",
			"price":         "0",
			"priceCurrency": "USD",
			"availability":  "https://schema.org/InStock",
			"url":           ev.RegistrationURL,
		},
	}

	if ev.IsVirtual {
		doc["eventAttendanceMode"] = "https://schema.org/OnlineEventAttendanceMode"
		doc["location"] = map[string]interface{}{
			"@type": "VirtualLocation",
			"url":   ev.RegistrationURL,
		}
	} else {
		doc["eventAttendanceMode"] = "https://schema.org/OfflineEventAttendanceMode"
		doc["location"] = map[string]interface{}{
			"@type": "Place",
			"name":  ev.LocationName,
			"address": map[string]interface{}{
				"@type":           "PostalAddress",
				"addressLocality": ev.Neighborhood,
				"addressRegion":   "WA",
			},
		}
	}

	return doc
}
