package logger

import (
	"fmt"
	"slices"
	"strings"
)

const (
	mainIndent  = "       "
	causeIndent = "      "
)

// formatErrorEntries renders the chain as a main error followed by a
// "Caused by" list. Metadata keys are sorted.
func formatErrorEntries(entries []errorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		indent := causeIndent

		switch i {
		case 0:
			lines = append(lines, "Error: "+msgLines[0])
			indent = mainIndent
		case 1:
			lines = append(lines, "", "  Caused by:", "    → "+msgLines[0])
		default:
			lines = append(lines, "    → "+msgLines[0])
		}

		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
