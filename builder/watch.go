package builder

import (
	"path/filepath"
	"regexp"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rs/zerolog/log"
)

// Watch rebuilds the site whenever a markdown source changes. Every event
// triggers a full rebuild: the index is derived from the whole post set, so
// rebuilding only the changed page would leave the listing stale. Blocks
// until the watcher is closed.
func (b *Builder) Watch() error {
	contentDir := filepath.Join(b.root, CONTENT_DIR)
	log.Debug().Str("path", contentDir).Msg("Watching content directory for changes")

	// Create a new file watcher
	w := watcher.New()
	w.SetMaxEvents(1)
	// Only watch for write, create, remove, rename and move events
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)

	// Only watch for markdown files
	r := regexp.MustCompile(`^.*\.md$`)
	w.AddFilterHook(watcher.RegexFilterHook(r, false))

	go func() {
		for {
			select {
			case event := <-w.Event:
				log.Debug().Str("path", event.Path).Msg("Content change detected")
				if err := b.Build(); err != nil {
					log.Error().Err(err).Msg("Rebuild failed")
				}
			case err := <-w.Error:
				log.Error().Err(err).Msg("Watcher error")
			case <-w.Closed:
				return
			}
		}
	}()

	// Add the content directory to the watcher
	if err := w.AddRecursive(contentDir); err != nil {
		return err
	}

	// Start the watching process - it'll check for changes every 100ms.
	return w.Start(time.Millisecond * 100)
}
