package builder

import (
	"fmt"
	"html"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// POST_LINKS_ID identifies the listing container inside the index page.
const POST_LINKS_ID = "post-links"

// IndexEntry is one row of the blog listing.
type IndexEntry struct {
	Title string
	Date  time.Time
	Link  string
}

// sortEntries orders entries newest-first. The sort is stable, so posts
// sharing a date keep their discovery order.
func sortEntries(entries []IndexEntry) []IndexEntry {
	sorted := make([]IndexEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// indexFragment renders the listing markup: a link to the page, a
// blockquoted date and a line break per post, concatenated in order.
func indexFragment(entries []IndexEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "<a href=%q>%s</a>", e.Link, html.EscapeString(e.Title))
		fmt.Fprintf(&b, "<blockquote>%s</blockquote>", e.Date.Format(DATE_FORMAT))
		b.WriteString("<br/>")
	}
	return b.String()
}

// updateIndexPage rewrites the listing container of the index page from the
// given entries. The container's previous children are fully replaced and the
// file is written back whole, so reruns can never accumulate duplicates.
func updateIndexPage(indexPath string, entries []IndexEntry) error {
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("reading index page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return fmt.Errorf("parsing index page: %w", err)
	}

	container := doc.Find("#" + POST_LINKS_ID)
	if container.Length() == 0 {
		return &IndexTargetError{Path: indexPath, ID: POST_LINKS_ID}
	}
	container.SetHtml(indexFragment(sortEntries(entries)))

	out, err := doc.Html()
	if err != nil {
		return fmt.Errorf("serializing index page: %w", err)
	}

	if err := os.WriteFile(indexPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing index page: %w", err)
	}
	return nil
}
