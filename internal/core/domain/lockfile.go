package domain

import (
	"bufio"
	"bytes"
	"strings"
)

// ParseLockEntries returns the non-comment, non-blank lines of a lock artifact, trimmed,
// in file order.
func ParseLockEntries(data []byte) []string {
	entries := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// FormatLockEntries renders a lock artifact: the header comment followed by one entry per line.
func FormatLockEntries(entries []string) []byte {
	var buf bytes.Buffer
	buf.WriteString(LockHeader)
	buf.WriteByte('\n')
	for _, entry := range entries {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
