package place

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is one row of the place table.
type Record struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Candidate is a selectable search result. Label and Value are both the place name.
type Candidate struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CandidateFromRecord converts a table row into a Candidate.
func CandidateFromRecord(r Record) Candidate {
	return Candidate{Label: r.Name, Value: r.Name}
}

// CandidateFromValue builds a Candidate for a value that is already known, such as a restored selection.
func CandidateFromValue(value string) Candidate {
	return Candidate{Label: value, Value: value}
}

// IsBlankQuery reports whether query carries no search term at all.
func IsBlankQuery(query string) bool {
	return strings.TrimSpace(query) == ""
}

// MatchesPrefix reports whether name starts with query, ignoring case.
// The query is used as typed; surrounding whitespace is significant.
func MatchesPrefix(name, query string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(query))
}

// ParseDataset decodes a JSON array of [name, lat, lon] rows.
// Rows whose first element is not a string, or whose coordinates are not numbers, are skipped.
func ParseDataset(raw []byte) ([]Record, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode place dataset: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		var fields [3]any
		for i := range fields {
			if err := json.Unmarshal(row[i], &fields[i]); err != nil {
				break
			}
		}
		name, ok := fields[0].(string)
		if !ok {
			continue
		}
		lat, latOK := fields[1].(float64)
		lon, lonOK := fields[2].(float64)
		if !latOK || !lonOK {
			continue
		}
		records = append(records, Record{Name: name, Lat: lat, Lon: lon})
	}
	return records, nil
}
