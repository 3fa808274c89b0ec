package yamlstore

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"

	"github.com/zjrosen/sdktable/internal/sdk"
)

// Preview returns a line diff between the file on disk and what Save would
// write for records. Lines are prefixed "+", "-" or " ". The result is
// empty when nothing would change.
func (s *Store) Preview(records []sdk.Record) (string, error) {
	current, err := afero.ReadFile(s.fs, s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading %s: %w", s.path, err)
	}
	next, err := s.render(records)
	if err != nil {
		return "", err
	}
	if string(current) == string(next) {
		return "", nil
	}
	return lineDiff(string(current), string(next)), nil
}

func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	return out.String()
}
