package building

import "strings"

// tokyoPrefix and wardSuffix bound the administrative ward token inside a
// free-text address, e.g. "東京都渋谷区神宮前1-1" -> "渋谷区".
const (
	tokyoPrefix = "東京都"
	wardSuffix  = "区"
)

// ExtractDistrict returns the ward token between the Tokyo prefecture prefix
// and the first following ward suffix, suffix included. Addresses without
// both markers yield "".
func ExtractDistrict(address string) string {
	i := strings.Index(address, tokyoPrefix)
	if i < 0 {
		return ""
	}
	rest := address[i+len(tokyoPrefix):]
	j := strings.Index(rest, wardSuffix)
	if j < 0 {
		return ""
	}
	return rest[:j+len(wardSuffix)]
}
