package builder

import (
	"fmt"
	"strings"
	"time"
)

// DATE_FORMAT is the single calendar format recognized on a post's date line.
const DATE_FORMAT = "January 02, 2006"

// extractMetadata reads a post's display title and publication date.
//
// The convention is positional: the first line is a top-level heading holding
// the title, and the third line is a blockquote holding the date. There is no
// fallback to file timestamps or default dates; a post violating the
// convention is excluded from the index.
func extractMetadata(raw []byte) (string, time.Time, error) {
	lines := strings.Split(string(raw), "\n")

	if len(lines) == 0 || !strings.HasPrefix(lines[0], "# ") {
		return "", time.Time{}, &MetadataError{
			Line:   1,
			Reason: "first line must be a top-level heading (# Title)",
		}
	}
	title := strings.TrimSpace(strings.TrimPrefix(lines[0], "# "))
	if title == "" {
		return "", time.Time{}, &MetadataError{
			Line:   1,
			Reason: "heading has no title text",
		}
	}

	if len(lines) < 3 || !strings.HasPrefix(lines[2], ">") {
		return "", time.Time{}, &MetadataError{
			Line:   3,
			Reason: "third line must be a blockquote date (> Month DD, YYYY)",
		}
	}
	dateStr := strings.TrimSpace(strings.TrimPrefix(lines[2], ">"))
	date, err := time.Parse(DATE_FORMAT, dateStr)
	if err != nil {
		return "", time.Time{}, &MetadataError{
			Line:   3,
			Reason: fmt.Sprintf("cannot parse date %q as %q", dateStr, DATE_FORMAT),
		}
	}

	return title, date, nil
}
