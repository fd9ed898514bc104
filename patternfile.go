package vanityforge

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/xerrors"
)

// ReadPatterns reads newline- or CRLF-delimited pattern records from r,
// skipping empty lines, mirroring vanitygen.c's read_file. Callers are
// responsible for opening "-" as stdin themselves.
func ReadPatterns(r io.Reader) ([]string, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	// Pattern files may contain very long regexes; grow past the default
	// 64KiB token limit rather than failing on them.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("reading pattern file: %w", err)
	}
	return patterns, nil
}
