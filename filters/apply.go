package filters

import (
	"strings"

	"github.com/olfact/sillage/core"
)

// wearContextKeywords maps each wear context to the note/accord substrings
// that qualify a fragrance for it.
var wearContextKeywords = map[WearContext][]string{
	ContextDay:    {"fresh", "clean", "citrus", "light"},
	ContextNight:  {"dark", "warm", "oriental", "woody"},
	ContextOffice: {"clean", "fresh", "subtle", "professional"},
	ContextDate:   {"sweet", "warm", "floral", "gourmand"},
}

// Apply returns the fragrances that pass every active filter, preserving
// input order. When no filter field is active the input is returned
// unchanged.
//
// The house-type filter is accepted but not evaluated: there is no reliable
// house-type data source, and fabricating one from brand names would be
// silently wrong more often than useful.
func Apply(fragrances []*core.Fragrance, f Filters) []*core.Fragrance {
	if !f.Active() {
		return fragrances
	}

	brandSet := make(map[string]bool, len(f.Brands))
	for _, b := range f.Brands {
		brandSet[b] = true
	}
	originSet := make(map[string]bool, len(f.BrandOrigins))
	for _, o := range f.BrandOrigins {
		originSet[o] = true
	}
	accordTerms := lowered(f.Accords)
	concentrationTerms := uppered(f.Concentrations)
	includeTerms := lowered(f.NotesInclude)
	excludeTerms := lowered(f.NotesExclude)

	result := make([]*core.Fragrance, 0, len(fragrances))
	for _, fragrance := range fragrances {
		if passes(fragrance, &f, brandSet, originSet, accordTerms, concentrationTerms, includeTerms, excludeTerms) {
			result = append(result, fragrance)
		}
	}
	return result
}

func passes(
	fragrance *core.Fragrance,
	f *Filters,
	brandSet, originSet map[string]bool,
	accordTerms, concentrationTerms, includeTerms, excludeTerms []string,
) bool {
	// Absent numeric fields pass range checks: missing data is not
	// disqualifying. A zero range Max is unbounded.
	if fragrance.Price > 0 {
		if fragrance.Price < f.PriceRange.Min {
			return false
		}
		if f.PriceRange.Max > 0 && fragrance.Price > f.PriceRange.Max {
			return false
		}
	}

	if len(brandSet) > 0 {
		if fragrance.Brand == "" || !brandSet[fragrance.Brand] {
			return false
		}
	}

	if len(accordTerms) > 0 {
		if len(fragrance.Accords) == 0 {
			return false
		}
		matched := false
		for accord := range fragrance.Accords {
			accord = strings.ToLower(accord)
			for _, term := range accordTerms {
				// Bidirectional so "floral" matches "white floral".
				if strings.Contains(accord, term) || strings.Contains(term, accord) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.WearContexts) > 0 && !matchesWearContext(fragrance, f.WearContexts) {
		return false
	}

	if f.MinRating > 0 {
		if fragrance.Rating == 0 || fragrance.Rating < f.MinRating {
			return false
		}
	}

	if len(concentrationTerms) > 0 {
		if fragrance.OilType == "" {
			return false
		}
		oilType := strings.ToUpper(fragrance.OilType)
		matched := false
		for _, term := range concentrationTerms {
			if strings.Contains(oilType, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(includeTerms) > 0 || len(excludeTerms) > 0 {
		notes := fragrance.AllNotes()

		// Include: every requested note must match at least one note.
		for _, required := range includeTerms {
			found := false
			for _, note := range notes {
				if strings.Contains(note, required) || strings.Contains(required, note) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}

		// Exclude: any match rejects.
		for _, excluded := range excludeTerms {
			for _, note := range notes {
				if strings.Contains(note, excluded) || strings.Contains(excluded, note) {
					return false
				}
			}
		}
	}

	if len(originSet) > 0 {
		if fragrance.Country == "" || !originSet[fragrance.Country] {
			return false
		}
	}

	if fragrance.Year > 0 {
		if fragrance.Year < f.YearRange.Min {
			return false
		}
		if f.YearRange.Max > 0 && fragrance.Year > f.YearRange.Max {
			return false
		}
	}

	if f.MinReviewCount > 0 && fragrance.RatingCount < f.MinReviewCount {
		return false
	}

	return true
}

// matchesWearContext reports whether any of the fragrance's notes or accords
// contains a keyword for any requested context. Contexts OR together;
// the result ANDs with the other filter categories.
func matchesWearContext(fragrance *core.Fragrance, contexts []WearContext) bool {
	notes := fragrance.AllNotes()
	accords := make([]string, 0, len(fragrance.Accords))
	for accord := range fragrance.Accords {
		accords = append(accords, strings.ToLower(accord))
	}

	for _, context := range contexts {
		for _, keyword := range wearContextKeywords[context] {
			for _, note := range notes {
				if strings.Contains(note, keyword) {
					return true
				}
			}
			for _, accord := range accords {
				if strings.Contains(accord, keyword) {
					return true
				}
			}
		}
	}
	return false
}

func lowered(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

func uppered(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
