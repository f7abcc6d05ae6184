package builder

import "os/exec"

// Formatter post-processes a written HTML file. Formatting is cosmetic; a
// failed pass leaves a valid, unformatted page behind.
type Formatter interface {
	Format(path string) error
}

// PrettierFormatter shells out to prettier to reformat a file in place.
type PrettierFormatter struct{}

func (PrettierFormatter) Format(path string) error {
	return exec.Command("prettier", "--write", path).Run()
}

// noopFormatter skips the formatting pass entirely.
type noopFormatter struct{}

func (noopFormatter) Format(string) error { return nil }
