package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Site layout conventions, relative to the site root.
const (
	CONTENT_DIR = "posts/markdown"
	OUTPUT_DIR  = "posts/html"
	INDEX_FILE  = "blog.html"

	HIGHLIGHT_THEME = "lovelace"
)

// Builder runs the full build pipeline for one site root: render every
// markdown post to its HTML page, then rebuild the blog index from the
// extracted metadata.
type Builder struct {
	root     string
	renderer *Renderer

	// Formatter runs over every written HTML file. Replaceable so tests do
	// not need prettier installed.
	Formatter Formatter
}

// New prepares a Builder for the given site root. The highlighting theme is
// validated here, before any post is touched.
func New(root string) (*Builder, error) {
	renderer, err := NewRenderer(HIGHLIGHT_THEME)
	if err != nil {
		return nil, err
	}

	return &Builder{
		root:      root,
		renderer:  renderer,
		Formatter: PrettierFormatter{},
	}, nil
}

// Build renders every post and rebuilds the blog index. Per-post failures
// are collected and reported together at the end; they do not stop the
// batch. Every write is a full overwrite, so rerunning a failed build
// converges once the input is fixed.
func (b *Builder) Build() error {
	log.Info().Msg("Building posts")

	contentDir := filepath.Join(b.root, CONTENT_DIR)
	outputDir := filepath.Join(b.root, OUTPUT_DIR)

	paths, err := getPostFiles(contentDir)
	if err != nil {
		return fmt.Errorf("discovering posts: %w", err)
	}

	// Create the output directory
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var failures []error
	var entries []IndexEntry
	for _, path := range paths {
		entry, err := b.buildPost(path, outputDir)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to build post")
			failures = append(failures, fmt.Errorf("%s: %w", path, err))
			continue
		}
		entries = append(entries, entry)
	}

	indexPath := filepath.Join(b.root, INDEX_FILE)
	if err := updateIndexPage(indexPath, entries); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild index")
		failures = append(failures, err)
	} else {
		b.format(indexPath)
	}

	log.Info().Int("posts", len(entries)).Int("failed", len(failures)).Msg("Build finished")
	return errors.Join(failures...)
}

// buildPost renders a single post, writes its page and returns its index
// entry. The page is written even when metadata extraction fails; the error
// then only withholds the post's index entry.
func (b *Builder) buildPost(path, outputDir string) (IndexEntry, error) {
	log.Debug().Str("path", path).Msg("Building post")

	raw, err := os.ReadFile(path)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("reading post: %w", err)
	}

	page, err := b.renderer.Render(raw)
	if err != nil {
		return IndexEntry{}, err
	}

	name := outputFileName(path)
	outPath := filepath.Join(outputDir, name)
	if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
		return IndexEntry{}, fmt.Errorf("writing page: %w", err)
	}
	b.format(outPath)

	title, date, err := extractMetadata(raw)
	if err != nil {
		return IndexEntry{}, err
	}

	return IndexEntry{
		Title: title,
		Date:  date,
		Link:  OUTPUT_DIR + "/" + name,
	}, nil
}

// format runs the optional formatting pass. Failure is logged, never fatal.
func (b *Builder) format(path string) {
	if err := b.Formatter.Format(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Formatting pass failed")
	}
}
