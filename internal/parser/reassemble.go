package parser

import "strings"

// reassemble merges physical lines into logical records. A line matching
// the boundary predicate starts a new record; any other non-empty line is
// appended, space-joined, to the current record. Continuation lines before
// the first boundary belong to no record and are discarded. The final
// buffer is flushed at end of input.
func reassemble(lines []string, isBoundary func(string) bool) []string {
	var records []string
	var current string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isBoundary(line) {
			if current != "" {
				records = append(records, current)
			}
			current = line
			continue
		}

		if current != "" {
			current += " " + line
		}
	}

	if current != "" {
		records = append(records, current)
	}

	return records
}

// splitLines breaks a pasted blob into trimmed physical lines. Windows
// line endings survive a browser copy-paste, so "\r" is stripped too.
func splitLines(rawText string) []string {
	lines := strings.Split(rawText, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
