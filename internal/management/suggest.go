package management

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the company name closest to term by edit distance, for a
// "did you mean" hint when a search matches nothing. It never affects Visible.
func Suggest(companies []Company, term string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || len(companies) == 0 {
		return "", false
	}
	runes := []rune(needle)
	limit := len(runes) / 3
	if limit < 2 {
		limit = 2
	}
	best, bestDist := "", limit+1
	for _, c := range companies {
		name := []rune(strings.ToLower(c.CompanyName))
		d := levenshtein.ComputeDistance(needle, string(name))
		// also score against a same-length prefix so short queries can hit long names
		if len(name) > len(runes) {
			if pd := levenshtein.ComputeDistance(needle, string(name[:len(runes)])); pd < d {
				d = pd
			}
		}
		if d < bestDist {
			best, bestDist = c.CompanyName, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
