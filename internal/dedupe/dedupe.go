// Package dedupe removes near-duplicate events within a batch. Cross-run
// deduplication happens at the store through the (title, start date)
// natural key.
package dedupe

import (
	"strings"

	"github.com/silverhaven/eventscout/internal/model"
)

// prefixLen guards against near-identical truncated headings: two titles
// sharing this many leading characters count as duplicates.
const prefixLen = 10

// Collapse drops duplicates from a single extraction batch, keeping the
// first occurrence. Titles are compared case-insensitively, either for
// equality or for a shared short prefix.
func Collapse(events []model.EventRecord) []model.EventRecord {
	var kept []model.EventRecord

	for _, ev := range events {
		title := strings.ToLower(strings.TrimSpace(ev.Title))
		dup := false
		for i := range kept {
			if sameTitle(title, strings.ToLower(strings.TrimSpace(kept[i].Title))) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, ev)
		}
	}

	return kept
}

func sameTitle(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) >= prefixLen && strings.HasPrefix(b, a[:prefixLen]) {
		return true
	}
	if len(b) >= prefixLen && strings.HasPrefix(a, b[:prefixLen]) {
		return true
	}
	return false
}
