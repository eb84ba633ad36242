// Package dataset loads the building directory from its tabular source.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// Recognized header columns. Unknown columns are ignored.
const (
	colName      = "name"
	colArchitect = "architect"
	colYear      = "year"
	colDesc      = "description"
	colImageURL  = "imageUrl"
	colAddress   = "address"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

// Decode reads a CSV resource with a header row and returns the buildings in
// row order plus the count of rows dropped. Rows missing a name or with
// unparsable coordinates are skipped, never fatal; only a malformed header
// or an unreadable stream fails the whole decode.
func Decode(r io.Reader) ([]building.Building, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[colName]; !ok {
		return nil, 0, fmt.Errorf("header is missing required column %q", colName)
	}

	var (
		out     []building.Building
		dropped int
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row (bare quotes, etc.): skip it, keep loading.
			dropped++
			continue
		}

		b, ok := decodeRow(row, idx)
		if !ok {
			dropped++
			continue
		}
		out = append(out, b)
	}

	return out, dropped, nil
}

func decodeRow(row []string, idx map[string]int) (building.Building, bool) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	lat, latErr := strconv.ParseFloat(field(colLatitude), 64)
	lon, lonErr := strconv.ParseFloat(field(colLongitude), 64)
	if latErr != nil || lonErr != nil {
		return building.Building{}, false
	}

	// The source data occasionally carries a blank year; keep the row with
	// a zero year, which downstream treats as "unknown".
	year, _ := strconv.Atoi(field(colYear))

	b, err := building.New(
		field(colName),
		field(colArchitect),
		year,
		field(colDesc),
		field(colImageURL),
		field(colAddress),
		lat, lon,
	)
	if err != nil {
		return building.Building{}, false
	}
	return b, true
}
