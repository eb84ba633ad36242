package filter

import (
	"sort"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// Criteria is a conjunctive multi-valued filter over the directory.
// An empty selection set means "match all"; a set containing every known
// value is equivalent, since facet values derive from the same directory
// every record's value is then a member.
type Criteria struct {
	architects map[string]struct{}
	districts  map[string]struct{}
	yearFrom   *int
	yearTo     *int
}

// NewCriteria creates a Criteria from selection lists and optional year bounds.
// Nil year pointers mean "no bound". Duplicate selections collapse.
func NewCriteria(architects, districts []string, yearFrom, yearTo *int) Criteria {
	return Criteria{
		architects: toSet(architects),
		districts:  toSet(districts),
		yearFrom:   yearFrom,
		yearTo:     yearTo,
	}
}

// IsEmpty reports whether the criteria filter nothing out.
func (c Criteria) IsEmpty() bool {
	return len(c.architects) == 0 && len(c.districts) == 0 && c.yearFrom == nil && c.yearTo == nil
}

// Matches evaluates the conjunctive predicate against a single building.
// Buildings without a derived district pass any district selection, and
// buildings with an unknown year (zero) pass any year bound; both rules keep
// sparse records reachable through the filters that do apply to them.
func (c Criteria) Matches(b building.Building) bool {
	if len(c.architects) > 0 {
		if _, ok := c.architects[b.Architect()]; !ok {
			return false
		}
	}
	if len(c.districts) > 0 && b.District() != "" {
		if _, ok := c.districts[b.District()]; !ok {
			return false
		}
	}
	if b.Year() != 0 {
		if c.yearFrom != nil && b.Year() < *c.yearFrom {
			return false
		}
		if c.yearTo != nil && b.Year() > *c.yearTo {
			return false
		}
	}
	return true
}

// Apply returns the buildings matching c, preserving input order.
// A yearFrom above yearTo simply yields an empty result.
func Apply(all []building.Building, c Criteria) []building.Building {
	out := make([]building.Building, 0, len(all))
	for _, b := range all {
		if c.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// YearRange is an inclusive year window.
type YearRange struct {
	Min int
	Max int
}

// Facets are the selectable filter values derived from the directory.
type Facets struct {
	Architects []string
	Districts  []string
	Years      YearRange
}

// Derive computes facets from the directory contents. Architect and district
// lists are deduplicated and sorted for stable presentation; buildings with
// no derived district contribute nothing to the district list, and unknown
// years (zero) contribute nothing to the year range. An empty directory, or
// one with no dated buildings, falls back to the configured year window.
func Derive(all []building.Building, fallback YearRange) Facets {
	if len(all) == 0 {
		return Facets{Years: fallback}
	}

	architects := make(map[string]struct{})
	districts := make(map[string]struct{})
	years := fallback
	dated := false

	for _, b := range all {
		if b.Architect() != "" {
			architects[b.Architect()] = struct{}{}
		}
		if b.District() != "" {
			districts[b.District()] = struct{}{}
		}
		if b.Year() == 0 {
			continue
		}
		if !dated {
			years = YearRange{Min: b.Year(), Max: b.Year()}
			dated = true
			continue
		}
		if b.Year() < years.Min {
			years.Min = b.Year()
		}
		if b.Year() > years.Max {
			years.Max = b.Year()
		}
	}

	return Facets{
		Architects: sortedKeys(architects),
		Districts:  sortedKeys(districts),
		Years:      years,
	}
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	s := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

func sortedKeys(s map[string]struct{}) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
