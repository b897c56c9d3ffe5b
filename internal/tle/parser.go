package tle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrInvalidTLE is returned when an element set fails format or checksum validation.
var ErrInvalidTLE = errors.New("invalid TLE")

// Parse reads NORAD TLE data from r and returns the valid entries.
// Both 2-line and 3-line (named) sets are accepted, mixed freely.
// Malformed entries are skipped with a warning log.
func Parse(r io.Reader, logger *slog.Logger) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	var entries []Entry
	for i := 0; i+1 < len(lines); {
		var set []string
		switch {
		case isLine(lines[i], '1') && isLine(lines[i+1], '2'):
			set = lines[i : i+2]
		case i+2 < len(lines) && isLine(lines[i+1], '1') && isLine(lines[i+2], '2'):
			set = lines[i : i+3]
		default:
			// Try to find next valid set.
			logger.Warn("skipping malformed TLE line", "line_index", i, "line", lines[i])
			i++
			continue
		}

		entry, err := ParseEntry(strings.Join(set, "\n"))
		if err != nil {
			logger.Warn("skipping invalid TLE entry", "line_index", i, "error", err)
		} else {
			entries = append(entries, entry)
		}
		i += len(set)
	}

	return entries, nil
}

func isLine(line string, n byte) bool {
	return len(line) > 1 && line[0] == n && line[1] == ' '
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r ")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
