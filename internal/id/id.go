package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryID returns a register entry ID like "2025-01-001".
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseEntryID parses "2025-01-001" into year, month, seq.
func ParseEntryID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q", id)
	}

	return year, month, seq, nil
}

// NextSeq returns one past the highest sequence among ids. Unparseable IDs
// are skipped.
func NextSeq(ids []string) int {
	maxSeq := 0
	for _, s := range ids {
		_, _, seq, err := ParseEntryID(s)
		if err != nil {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return maxSeq + 1
}
