package filters

import "time"

// WearContext is an occasion the user wants a fragrance for. It is a derived
// attribute: fragrances carry no context field, matching happens against
// their notes and accords.
type WearContext string

const (
	ContextDay    WearContext = "day"
	ContextNight  WearContext = "night"
	ContextOffice WearContext = "office"
	ContextDate   WearContext = "date"
)

// PriceRange and YearRange bounds are inclusive.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Filters describes one search invocation's constraints. List fields default
// to empty (no restriction) and a zero range Max is unbounded, so a
// zero-configured field is inactive. Filters are constructed fresh per
// search and never persisted.
type Filters struct {
	PriceRange     PriceRange    `json:"priceRange"`
	Brands         []string      `json:"brands"`
	Accords        []string      `json:"accords"`
	WearContexts   []WearContext `json:"wearContexts"`
	MinRating      float64       `json:"minRating"`
	Concentrations []string      `json:"concentrations"` // matched against the oil-type hint (EDT, EDP, Parfum)
	NotesInclude   []string      `json:"notesInclude"`
	NotesExclude   []string      `json:"notesExclude"`
	HouseTypes     []string      `json:"houseTypes"` // accepted but not evaluated, see Apply
	BrandOrigins   []string      `json:"brandOrigins"`
	YearRange      YearRange     `json:"yearRange"`
	MinReviewCount int           `json:"minReviewCount"` // 0 means no minimum
}

// defaultPriceMax is the upper bound of the full price domain.
const defaultPriceMax = 10000

// Defaults returns a Filters with every field at its inactive value.
// Apply on default filters is a no-op.
func Defaults() Filters {
	return Filters{
		PriceRange: PriceRange{Min: 0, Max: defaultPriceMax},
		YearRange:  YearRange{Min: 0, Max: time.Now().Year()},
	}
}

// Active reports whether any filter field is non-default.
func (f *Filters) Active() bool {
	return len(f.Brands) > 0 ||
		len(f.Accords) > 0 ||
		len(f.WearContexts) > 0 ||
		f.MinRating > 0 ||
		f.PriceRange.Min > 0 ||
		(f.PriceRange.Max > 0 && f.PriceRange.Max < defaultPriceMax) ||
		len(f.Concentrations) > 0 ||
		len(f.NotesInclude) > 0 ||
		len(f.NotesExclude) > 0 ||
		len(f.HouseTypes) > 0 ||
		len(f.BrandOrigins) > 0 ||
		f.YearRange.Min > 0 ||
		(f.YearRange.Max > 0 && f.YearRange.Max < time.Now().Year()) ||
		f.MinReviewCount > 0
}

// CountActive returns how many filter categories are engaged, for UI badges.
func (f *Filters) CountActive() int {
	count := 0
	if len(f.Brands) > 0 {
		count++
	}
	if len(f.Accords) > 0 {
		count++
	}
	if len(f.WearContexts) > 0 {
		count++
	}
	if f.MinRating > 0 {
		count++
	}
	if f.PriceRange.Min > 0 {
		count++
	}
	if f.PriceRange.Max > 0 && f.PriceRange.Max < defaultPriceMax {
		count++
	}
	if len(f.Concentrations) > 0 {
		count++
	}
	if len(f.NotesInclude) > 0 {
		count++
	}
	if len(f.NotesExclude) > 0 {
		count++
	}
	if len(f.HouseTypes) > 0 {
		count++
	}
	if len(f.BrandOrigins) > 0 {
		count++
	}
	if f.YearRange.Min > 0 {
		count++
	}
	if f.YearRange.Max > 0 && f.YearRange.Max < time.Now().Year() {
		count++
	}
	if f.MinReviewCount > 0 {
		count++
	}
	return count
}
