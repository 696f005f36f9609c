package model

import (
	"bufio"
	"io"
	"strings"
)

// WorkItem is a single URL to download, identified by the 1-based line
// number it came from in the input list. The line number is carried only
// for reporting; two items with the same URL on different lines are
// distinct work items.
type WorkItem struct {
	// Line is the 1-based line number in the source list file.
	Line int `json:"line"`

	// URL is the trimmed download target.
	URL string `json:"url"`
}

// ParseWorkItems reads a newline-delimited URL list and returns the work
// items in file order. Blank lines and comment lines (leading '#', after
// trimming) are skipped but still counted for line numbering.
func ParseWorkItems(r io.Reader) ([]WorkItem, error) {
	var items []WorkItem

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, WorkItem{Line: line, URL: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
