package filter

import (
	"reflect"
	"testing"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

func fixture(t *testing.T) []building.Building {
	t.Helper()
	return []building.Building{
		building.Reconstruct("1", "国立代々木競技場", "丹下健三", 1964, "", "", "東京都渋谷区神南2-1-1", 35.667, 139.699),
		building.Reconstruct("2", "東京都庁舎", "丹下健三", 1991, "", "", "東京都新宿区西新宿2-8-1", 35.689, 139.692),
		building.Reconstruct("3", "根津美術館", "隈研吾", 2009, "", "", "東京都港区南青山6-5-1", 35.662, 139.717),
		building.Reconstruct("4", "国際教養大学図書館", "仙田満", 2008, "", "", "秋田県秋田市雄和椿川", 39.636, 140.195),
	}
}

func years(from, to int) (*int, *int) {
	return &from, &to
}

func TestApply_EmptyCriteriaMatchesAll(t *testing.T) {
	all := fixture(t)
	got := Apply(all, NewCriteria(nil, nil, nil, nil))
	if len(got) != len(all) {
		t.Fatalf("expected %d results, got %d", len(all), len(got))
	}
}

func TestApply_FullSelectionEquivalentToEmpty(t *testing.T) {
	all := fixture(t)
	f := Derive(all, YearRange{Min: 1900, Max: 2024})

	empty := Apply(all, NewCriteria(nil, nil, nil, nil))
	full := Apply(all, NewCriteria(f.Architects, nil, nil, nil))
	if !reflect.DeepEqual(empty, full) {
		t.Errorf("selecting every architect must match the empty selection")
	}
}

func TestApply_Conjunctive(t *testing.T) {
	all := fixture(t)
	from, to := years(1960, 1970)
	got := Apply(all, NewCriteria([]string{"丹下健三"}, []string{"渋谷区"}, from, to))
	if len(got) != 1 || got[0].Name() != "国立代々木競技場" {
		t.Fatalf("expected only 国立代々木競技場, got %v", names(got))
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	all := fixture(t)
	got := Apply(all, NewCriteria([]string{"丹下健三"}, nil, nil, nil))
	want := []string{"国立代々木競技場", "東京都庁舎"}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected directory order %v, got %v", want, names(got))
	}
}

func TestApply_InvertedYearRangeIsEmpty(t *testing.T) {
	from, to := years(2010, 1990)
	if got := Apply(fixture(t), NewCriteria(nil, nil, from, to)); len(got) != 0 {
		t.Errorf("yearFrom above yearTo must yield no results, got %v", names(got))
	}
}

func TestMatches_NoDistrictPassesDistrictFilter(t *testing.T) {
	// Buildings outside the 23 wards carry no district and are never
	// excluded by a district selection.
	c := NewCriteria(nil, []string{"渋谷区"}, nil, nil)
	outside := building.Reconstruct("4", "国際教養大学図書館", "仙田満", 2008, "", "", "秋田県秋田市雄和椿川", 39.636, 140.195)
	if !c.Matches(outside) {
		t.Error("record without a district must match any district selection")
	}
}

func TestMatches_UnknownYearPassesYearBounds(t *testing.T) {
	// Rows whose source data carries no year decode to year zero; like the
	// no-district rule, they pass any year bound instead of vanishing.
	undated := building.Reconstruct("5", "年不明の建物", "不詳", 0, "", "", "東京都中央区銀座1-1", 35.671, 139.765)
	from, to := years(1960, 1970)
	if !NewCriteria(nil, nil, from, to).Matches(undated) {
		t.Error("unknown-year record must pass year bounds")
	}
	if !NewCriteria(nil, nil, from, nil).Matches(undated) {
		t.Error("unknown-year record must pass a lower bound")
	}
}

func TestDerive_UnknownYearExcludedFromRange(t *testing.T) {
	fallback := YearRange{Min: 1900, Max: 2024}
	undated := building.Reconstruct("5", "年不明の建物", "不詳", 0, "", "", "東京都中央区銀座1-1", 35.671, 139.765)

	f := Derive(append(fixture(t), undated), fallback)
	if f.Years.Min != 1964 || f.Years.Max != 2009 {
		t.Errorf("year range = %+v; zero years must not drag the window", f.Years)
	}

	f = Derive([]building.Building{undated}, fallback)
	if f.Years != fallback {
		t.Errorf("all-undated directory must fall back, got %+v", f.Years)
	}
}

func TestDerive_SortedAndDeduplicated(t *testing.T) {
	f := Derive(fixture(t), YearRange{Min: 1900, Max: 2024})

	wantArchitects := []string{"丹下健三", "仙田満", "隈研吾"}
	if !reflect.DeepEqual(f.Architects, wantArchitects) {
		t.Errorf("architects = %v, want %v", f.Architects, wantArchitects)
	}
	wantDistricts := []string{"新宿区", "渋谷区", "港区"}
	if !reflect.DeepEqual(f.Districts, wantDistricts) {
		t.Errorf("districts = %v, want %v", f.Districts, wantDistricts)
	}
	if f.Years.Min != 1964 || f.Years.Max != 2009 {
		t.Errorf("years = %+v, want [1964, 2009]", f.Years)
	}
}

func TestDerive_EmptyDirectoryFallsBack(t *testing.T) {
	fallback := YearRange{Min: 1900, Max: 2024}
	f := Derive(nil, fallback)
	if f.Years != fallback {
		t.Errorf("expected fallback window %+v, got %+v", fallback, f.Years)
	}
	if len(f.Architects) != 0 || len(f.Districts) != 0 {
		t.Errorf("expected empty facet lists, got %+v", f)
	}
}

func names(bs []building.Building) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Name())
	}
	return out
}
