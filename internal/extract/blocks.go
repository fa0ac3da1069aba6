package extract

import "strings"

const (
	minBlockLen = 20
	maxBlockLen = 2000
)

// splitBlocks cuts a plain-text page rendering into candidate blocks on
// blank-line and heading boundaries, then drops blocks too short to be an
// event or too long to be a single one.
func splitBlocks(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var blocks []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		block := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if len(block) >= minBlockLen && len(block) <= maxBlockLen {
			blocks = append(blocks, block)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		// A heading starts a new block so each calendar entry under its own
		// heading is considered separately.
		if strings.HasPrefix(trimmed, "#") && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks
}
