// Package source holds the read-only registry of external pages the
// pipeline visits.
package source

import "github.com/silverhaven/eventscout/internal/model"

// Descriptor identifies one external community or event page. The
// neighborhood and category are defaults that downstream stages may
// override with more specific signals from the page itself.
type Descriptor struct {
	Name         string
	URL          string
	Neighborhood string
	Category     model.EventCategory
}

// Catalog is an immutable list of sources. It is injected into the
// pipeline so tests can substitute a synthetic one.
type Catalog []Descriptor

// Neighborhoods returns the distinct neighborhood labels in catalog order
func (c Catalog) Neighborhoods() []string {
	seen := make(map[string]bool, len(c))
	var out []string
	for _, d := range c {
		if d.Neighborhood == "" || seen[d.Neighborhood] {
			continue
		}
		seen[d.Neighborhood] = true
		out = append(out, d.Neighborhood)
	}
	return out
}

// Default is the production catalog of community calendars the pipeline
// watches for senior-focused events.
func Default() Catalog {
	return Catalog{
		{
			Name:         "Queen Anne Community Center",
			URL:          "https://www.seattle.gov/parks/allparks/queen-anne-community-center",
			Neighborhood: "Queen Anne",
			Category:     model.CategoryCommunityHub,
		},
		{
			Name:         "Magnolia Community Center",
			URL:          "https://www.seattle.gov/parks/allparks/magnolia-community-center",
			Neighborhood: "Magnolia",
			Category:     model.CategoryCommunityHub,
		},
		{
			Name:         "Ballard Senior Center",
			URL:          "https://www.ballardseniorcenter.org/events",
			Neighborhood: "Ballard",
			Category:     model.CategoryCommunityHub,
		},
		{
			Name:         "Swedish Medical Center Classes",
			URL:          "https://www.swedish.org/classes-and-resources/classes-and-events",
			Neighborhood: "First Hill",
			Category:     model.CategoryMedicalWellness,
		},
		{
			Name:         "UW Medicine Community Events",
			URL:          "https://www.uwmedicine.org/about/events",
			Neighborhood: "University District",
			Category:     model.CategoryMedicalWellness,
		},
		{
			Name:         "Aegis Living Open Houses",
			URL:          "https://www.aegisliving.com/events",
			Neighborhood: "Capitol Hill",
			Category:     model.CategoryLuxuryShowcase,
		},
		{
			Name:         "Mirabella Seattle Events",
			URL:          "https://mirabellaliving.com/seattle/events",
			Neighborhood: "South Lake Union",
			Category:     model.CategoryLuxuryShowcase,
		},
	}
}
