package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSortEntriesNewestFirst(t *testing.T) {
	entries := []IndexEntry{
		{Title: "Oldest", Date: date(2022, time.January, 1)},
		{Title: "Newest", Date: date(2024, time.March, 2)},
		{Title: "Middle", Date: date(2023, time.June, 15)},
	}

	sorted := sortEntries(entries)

	assert.Equal(t, "Newest", sorted[0].Title)
	assert.Equal(t, "Middle", sorted[1].Title)
	assert.Equal(t, "Oldest", sorted[2].Title)
	// input untouched
	assert.Equal(t, "Oldest", entries[0].Title)
}

func TestSortEntriesTiesKeepDiscoveryOrder(t *testing.T) {
	shared := date(2023, time.June, 15)
	entries := []IndexEntry{
		{Title: "Alpha", Date: shared},
		{Title: "Beta", Date: shared},
		{Title: "Newer", Date: date(2024, time.January, 1)},
		{Title: "Gamma", Date: shared},
	}

	sorted := sortEntries(entries)

	assert.Equal(t, "Newer", sorted[0].Title)
	assert.Equal(t, "Alpha", sorted[1].Title)
	assert.Equal(t, "Beta", sorted[2].Title)
	assert.Equal(t, "Gamma", sorted[3].Title)
}

func TestIndexFragment(t *testing.T) {
	entries := []IndexEntry{
		{Title: "Second", Date: date(2023, time.June, 15), Link: "posts/html/second.html"},
		{Title: "First", Date: date(2023, time.January, 1), Link: "posts/html/first.html"},
	}

	fragment := indexFragment(entries)

	assert.Equal(t,
		`<a href="posts/html/second.html">Second</a><blockquote>June 15, 2023</blockquote><br/>`+
			`<a href="posts/html/first.html">First</a><blockquote>January 01, 2023</blockquote><br/>`,
		fragment)
}

func TestIndexFragmentEscapesTitles(t *testing.T) {
	fragment := indexFragment([]IndexEntry{
		{Title: "Tips & <Tricks>", Date: date(2023, time.June, 15), Link: "posts/html/tips.html"},
	})

	assert.Contains(t, fragment, "Tips &amp; &lt;Tricks&gt;")
}

const testIndexPage = `<!DOCTYPE html>
<html lang="en">
  <head><title>Blog</title></head>
  <body>
    <div id="post-links"><a href="posts/html/stale.html">Stale</a></div>
  </body>
</html>
`

func writeIndexPage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), INDEX_FILE)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpdateIndexPageReplacesContainer(t *testing.T) {
	path := writeIndexPage(t, testIndexPage)
	entries := []IndexEntry{
		{Title: "First", Date: date(2023, time.January, 1), Link: "posts/html/first.html"},
		{Title: "Second", Date: date(2023, time.June, 15), Link: "posts/html/second.html"},
	}

	require.NoError(t, updateIndexPage(path, entries))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(content)

	assert.NotContains(t, page, "Stale")
	assert.Contains(t, page, `<a href="posts/html/second.html">Second</a>`)
	assert.Contains(t, page, `<a href="posts/html/first.html">First</a>`)
	assert.Contains(t, page, "<blockquote>June 15, 2023</blockquote>")
	assert.Less(t, strings.Index(page, "Second"), strings.Index(page, "First"),
		"newest entry must be listed first")
}

func TestUpdateIndexPageIsIdempotent(t *testing.T) {
	path := writeIndexPage(t, testIndexPage)
	entries := []IndexEntry{
		{Title: "Only", Date: date(2023, time.June, 15), Link: "posts/html/only.html"},
	}

	require.NoError(t, updateIndexPage(path, entries))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, updateIndexPage(path, entries))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, strings.Count(string(second), ">Only</a>"),
		"reruns must not accumulate duplicate entries")
}

func TestUpdateIndexPageMissingContainer(t *testing.T) {
	path := writeIndexPage(t, `<!DOCTYPE html><html><body><div id="other"></div></body></html>`)

	err := updateIndexPage(path, nil)

	var targetErr *IndexTargetError
	require.ErrorAs(t, err, &targetErr)
	assert.Equal(t, POST_LINKS_ID, targetErr.ID)
}
