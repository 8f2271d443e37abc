package portfolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ReadCSV parses a portfolio CSV with a header row containing Techstack and
// Links columns (case-insensitive). Rows with an empty link are skipped.
func ReadCSV(r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("portfolio csv: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("portfolio csv: read header: %w", err)
	}

	stackCol, linkCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "techstack", "tech_stack", "tech stack":
			stackCol = i
		case "links", "link", "url":
			linkCol = i
		}
	}
	if stackCol < 0 || linkCol < 0 {
		return nil, fmt.Errorf("portfolio csv: header must contain Techstack and Links columns, got %v", header)
	}

	var items []Item
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("portfolio csv: line %d: %w", line, err)
		}
		if linkCol >= len(rec) {
			continue
		}
		link := strings.TrimSpace(rec[linkCol])
		if link == "" {
			continue
		}
		stack := ""
		if stackCol < len(rec) {
			stack = strings.TrimSpace(rec[stackCol])
		}
		items = append(items, Item{
			ID:        uuid.NewString(),
			Techstack: stack,
			Link:      link,
		})
	}
	return items, nil
}
