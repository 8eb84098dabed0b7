// Package configfile drives batch module loading from a line-oriented list:
// one module name or path per line, '#' comment lines and blank lines
// ignored. Lines may be arbitrarily long.
package configfile

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/vk/modhost/internal/ctxlog"
	"github.com/vk/modhost/internal/loader"
)

// Result summarizes one batch run. Failed lines are recorded, not fatal:
// the batch always runs to the end of the list.
type Result struct {
	Attempted int
	Failures  []LineError
}

// LineError pins one failed load to its line in the source.
type LineError struct {
	Line int
	Name string
	Err  error
}

// LoadFile runs the batch in the named file. A missing or unopenable file
// is reported and treated as an empty batch, not an error.
func LoadFile(ctx context.Context, l *loader.Loader, path string) Result {
	logger := ctxlog.FromContext(ctx)
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Module list file not found, nothing to load.", "path", path, "error", err)
		return Result{}
	}
	defer f.Close()
	return Load(ctx, l, f)
}

// Load runs the batch read from r. Every non-comment, non-blank line is
// handed to the loader in file order; per-line failures are logged and
// collected while the batch continues.
func Load(ctx context.Context, l *loader.Loader, r io.Reader) Result {
	logger := ctxlog.FromContext(ctx)
	var res Result

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			name := strings.TrimSpace(line)
			if name != "" && !strings.HasPrefix(name, "#") {
				res.Attempted++
				if loadErr := l.Load(ctx, name, nil); loadErr != nil {
					logger.Error("Module from list failed to load, continuing.",
						"line", lineNo, "name", name, "error", loadErr)
					res.Failures = append(res.Failures, LineError{Line: lineNo, Name: name, Err: loadErr})
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Error("Module list read failed, stopping batch.", "error", err)
			}
			break
		}
	}
	return res
}
