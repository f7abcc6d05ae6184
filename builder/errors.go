package builder

import "fmt"

// MetadataError reports a post that violates the positional metadata
// convention. It is fatal to the post's index entry but not to the batch.
type MetadataError struct {
	Line   int
	Reason string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata: line %d: %s", e.Line, e.Reason)
}

// RenderError reports a failure assembling a post's HTML page.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// IndexTargetError reports a missing listing container in the index page.
// It aborts the index rebuild; rendered pages are unaffected.
type IndexTargetError struct {
	Path string
	ID   string
}

func (e *IndexTargetError) Error() string {
	return fmt.Sprintf("index: no element with id=%q found in %s", e.ID, e.Path)
}
