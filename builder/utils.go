package builder

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// getPostFiles returns every markdown file under the content root, in
// lexicographic path order. That order is also the tie-break order for posts
// sharing a publication date.
func getPostFiles(contentPath string) ([]string, error) {
	paths := []string{}
	err := filepath.Walk(contentPath, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() {
			return nil // not a file. ignore.
		}

		if filepath.Ext(path) == ".md" {
			paths = append(paths, path)
			log.Debug().Str("path", path).Msg("Found post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// outputFileName derives the rendered page's filename from the source's base
// name with the extension swapped.
func outputFileName(mdPath string) string {
	base := filepath.Base(mdPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}
