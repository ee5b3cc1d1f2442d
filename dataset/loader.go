package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/olfact/sillage/core"
)

// mainAccordColumns is how many ranked accord columns the Kaggle-style
// export carries. Intensities default to 100, 80, 60, 40, 20 by rank.
const mainAccordColumns = 5

var trailingDecimalZeros = regexp.MustCompile(`\.0+$`)
var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Parse reads a dataset document: either a bare JSON array of records or an
// object with a "fragrances" array. Records without a name are dropped.
func Parse(r io.Reader) ([]*core.Fragrance, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		var wrapped struct {
			Fragrances []map[string]any `json:"fragrances"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Fragrances == nil {
			return nil, fmt.Errorf("%w: expected an array or a fragrances object", ErrInvalidFormat)
		}
		records = wrapped.Fragrances
	}

	fragrances := make([]*core.Fragrance, 0, len(records))
	for _, record := range records {
		f := ConvertRecord(record)
		if f.Name == "" {
			continue
		}
		fragrances = append(fragrances, f)
	}
	return fragrances, nil
}

// ConvertRecord maps one raw dataset record to a Fragrance, resolving field
// aliases and coercing the historical value formats.
func ConvertRecord(record map[string]any) *core.Fragrance {
	f := &core.Fragrance{
		Name:        stringField(record, "name"),
		Brand:       stringField(record, "brand"),
		Country:     stringField(record, "country"),
		Description: stringField(record, "description"),
		Gender:      stringField(record, "gender"),
		Image:       stringField(record, "image"),
		OilType:     stringField(record, "oilType"),
		Top:         notesField(record, "top"),
		Middle:      notesField(record, "middle"),
		Base:        notesField(record, "base"),
		Year:        parseYear(fieldValue(record, "year")),
		Rating:      parseDecimal(fieldValue(record, "rating")),
		RatingCount: parseYear(fieldValue(record, "ratingCount")),
		Price:       parsePrice(fieldValue(record, "price")),
		Accords:     parseAccords(record),
	}
	return f
}

func fieldValue(record map[string]any, field string) any {
	value, _ := resolveField(record, field)
	return value
}

func stringField(record map[string]any, field string) string {
	value, ok := resolveField(record, field)
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func notesField(record map[string]any, field string) []string {
	value, ok := resolveField(record, field)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case []any:
		notes := make([]string, 0, len(v))
		for _, n := range v {
			if s, ok := n.(string); ok && strings.TrimSpace(s) != "" {
				notes = append(notes, strings.TrimSpace(s))
			}
		}
		return notes
	case string:
		// Historical exports store note lists as comma-separated strings.
		parts := strings.Split(v, ",")
		notes := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				notes = append(notes, p)
			}
		}
		return notes
	}
	return nil
}

// parseYear handles numeric years and the "2024.0" string format.
func parseYear(value any) int {
	switch v := value.(type) {
	case float64:
		return int(math.Floor(v))
	case int:
		return v
	case string:
		cleaned := strings.TrimSpace(trailingDecimalZeros.ReplaceAllString(v, ""))
		parsed, err := strconv.Atoi(cleaned)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// parseDecimal handles numbers and European decimal strings ("4,2").
func parseDecimal(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		normalized := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		parsed, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// parsePrice strips currency symbols before parsing.
func parsePrice(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		cleaned := nonPriceChars.ReplaceAllString(v, "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// parseAccords accepts an accord map (numeric or named intensities) or the
// ranked mainaccord1..5 columns.
func parseAccords(record map[string]any) map[string]float64 {
	if value, ok := resolveField(record, "accords"); ok {
		if m, ok := value.(map[string]any); ok {
			accords := make(map[string]float64, len(m))
			for name, raw := range m {
				switch v := raw.(type) {
				case float64:
					accords[name] = v
				case string:
					accords[name] = namedIntensity(v)
				}
			}
			if len(accords) > 0 {
				return accords
			}
		}
	}

	accords := make(map[string]float64, mainAccordColumns)
	for i := 1; i <= mainAccordColumns; i++ {
		value, ok := record[fmt.Sprintf("mainaccord%d", i)]
		if !ok {
			continue
		}
		name, ok := value.(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		accords[strings.TrimSpace(name)] = float64(100 - (i-1)*20)
	}
	if len(accords) == 0 {
		return nil
	}
	return accords
}

// namedIntensity converts verbal accord strengths to percentages.
func namedIntensity(name string) float64 {
	switch name {
	case "Dominant":
		return 100
	case "Prominent":
		return 75
	case "Moderate":
		return 50
	default:
		return 25
	}
}
