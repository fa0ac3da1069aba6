// Package extract recognizes calendar events embedded in unstructured
// page text. Extraction is heuristic and best-effort: blocks that cannot
// be recognized are skipped silently, never errored.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

const (
	titleMaxLen       = 200
	descriptionMaxLen = 400
)

// Fragment is one recognized event candidate, prior to normalization
type Fragment struct {
	Title           string
	Description     string
	LocationName    string
	RegistrationURL string
	Start           time.Time
}

// Extractor applies the recognition heuristics to fetched page text
type Extractor struct {
	now     func() time.Time
	horizon time.Duration
}

// Option configures an Extractor
type Option func(*Extractor)

// WithClock overrides the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New creates an Extractor that accepts dates up to horizonDays ahead.
// Dates beyond the horizon are treated as bad parses, not far-future
// events.
func New(horizonDays int, opts ...Option) *Extractor {
	if horizonDays <= 0 {
		horizonDays = 90
	}
	e := &Extractor{
		now:     time.Now,
		horizon: time.Duration(horizonDays) * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans the content for event candidates. Malformed input yields
// fewer fragments, never an error.
func (e *Extractor) Extract(content *model.RawContent) []Fragment {
	if content == nil || content.Body == "" {
		return nil
	}

	now := e.now()
	var fragments []Fragment

	for _, block := range splitBlocks(content.Body) {
		date, ok := findDate(block)
		if !ok {
			continue
		}
		if !date.After(now) || date.After(now.Add(e.horizon)) {
			continue
		}

		start := date
		if hour, minute, ok := findTime(block); ok {
			start = combine(date, hour, minute)
		}

		title := extractTitle(block)
		if title == "" || isBoilerplate(title) {
			continue
		}

		fragments = append(fragments, Fragment{
			Title:           title,
			Description:     extractDescription(block, title),
			LocationName:    extractLocation(block),
			RegistrationURL: extractURL(block),
			Start:           start,
		})
	}

	return fragments
}

var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)

// extractTitle takes the first heading-like line, else the first bold
// span, else the first line of the block.
func extractTitle(block string) string {
	lines := strings.Split(block, "\n")

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return clampTitle(stripMarkup(trimmed))
		}
	}

	if m := boldPattern.FindStringSubmatch(block); m != nil {
		span := m[1]
		if span == "" {
			span = m[2]
		}
		if t := clampTitle(stripMarkup(span)); t != "" {
			return t
		}
	}

	for _, line := range lines {
		if t := clampTitle(stripMarkup(line)); t != "" {
			return t
		}
	}
	return ""
}

func clampTitle(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > titleMaxLen {
		s = strings.TrimSpace(s[:titleMaxLen])
	}
	return s
}

// boilerplateTerms mark navigation and footer text that date-matching
// alone cannot rule out.
var boilerplateTerms = []string{
	"copyright", "all rights reserved", "privacy", "terms of use",
	"terms of service", "cookie", "login", "log in", "sign in",
	"subscribe", "newsletter", "unsubscribe", "skip to content",
}

func isBoilerplate(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range boilerplateTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// extractDescription keeps the block remainder after the title line,
// markup stripped. May be empty; the normalizer synthesizes one then.
func extractDescription(block, title string) string {
	var parts []string
	for _, line := range strings.Split(block, "\n") {
		cleaned := stripMarkup(line)
		if cleaned == "" || cleaned == title {
			continue
		}
		parts = append(parts, cleaned)
	}

	desc := strings.Join(parts, " ")
	if len(desc) > descriptionMaxLen {
		desc = strings.TrimSpace(desc[:descriptionMaxLen])
	}
	return desc
}

var locationPattern = regexp.MustCompile(`(?im)^\s*(?:\*\*)?location(?:\*\*)?\s*:\s*(.+)$`)

func extractLocation(block string) string {
	if m := locationPattern.FindStringSubmatch(block); m != nil {
		return stripMarkup(m[1])
	}
	return ""
}

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// extractURL returns the first URL-looking substring as the registration
// link; callers default to the source page when none is present.
func extractURL(block string) string {
	return urlPattern.FindString(block)
}

var (
	markupStripper = strings.NewReplacer(
		"#", "", "*", "", "_", "", "`", "",
		"[", "", "]", "", ">", "",
	)
	linkTarget = regexp.MustCompile(`\(https?://[^)]*\)`)
)

func stripMarkup(s string) string {
	s = linkTarget.ReplaceAllString(s, "") // keep the text of markdown links, drop the target
	s = markupStripper.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
