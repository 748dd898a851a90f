// Package logtail reads the end of wpfeed's log file for the in-app log view.
// While the TUI owns the terminal, log output goes to a file instead of
// stderr, so this is the only way to see it without leaving the program.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// DefaultLines is used when Tail is asked for zero or fewer lines.
const DefaultLines = 200

// Result is the tail of a log file.
type Result struct {
	Path      string
	Lines     []string
	Truncated bool // earlier lines were dropped
	Missing   bool // the file does not exist yet
}

// Tail returns at most maxLines from the end of the file at path. A missing
// file is not an error.
func Tail(path string, maxLines int) (Result, error) {
	res := Result{Path: path}
	if path == "" {
		res.Missing = true
		return res, nil
	}
	if maxLines <= 0 {
		maxLines = DefaultLines
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Missing = true
			return res, nil
		}
		return res, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	seen := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring[seen%maxLines] = scanner.Text()
		seen++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read log: %w", err)
	}

	if seen <= maxLines {
		res.Lines = append([]string(nil), ring[:seen]...)
		return res, nil
	}
	res.Truncated = true
	res.Lines = make([]string, maxLines)
	start := seen % maxLines
	for i := range res.Lines {
		res.Lines[i] = ring[(start+i)%maxLines]
	}
	return res, nil
}
