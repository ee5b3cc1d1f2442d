package dataset

// Dataset files have passed through several hands and several header
// conventions. Each logical field carries an explicit ordered list of
// accepted aliases; the first alias present in a record wins.
var fieldAliases = map[string][]string{
	"name":        {"Perfume", "name", "Name", "fragrance_name"},
	"brand":       {"Brand", "brand", "brand_name"},
	"year":        {"Year", "year"},
	"country":     {"Country", "country"},
	"top":         {"Top", "top", "top_notes", "topNotes"},
	"middle":      {"Middle", "middle", "middle_notes", "middleNotes"},
	"base":        {"Base", "base", "base_notes", "baseNotes"},
	"rating":      {"Rating Value", "rating", "Rating", "user_rating"},
	"ratingCount": {"Rating Count", "ratingCount", "rating_count"},
	"price":       {"price", "Price"},
	"image":       {"url", "image", "Image", "image_url", "imageUrl", "Image URL"},
	"description": {"description", "Description"},
	"gender":      {"Gender", "gender"},
	"oilType":     {"oilType", "oil_type", "concentration", "Concentration"},
	"accords":     {"accords", "Accords"},
}

// resolveField returns the first aliased value present in the record.
// Pure lookup; no type coercion happens here.
func resolveField(record map[string]any, field string) (any, bool) {
	for _, alias := range fieldAliases[field] {
		if value, ok := record[alias]; ok && value != nil {
			if s, isString := value.(string); isString && s == "" {
				continue
			}
			return value, true
		}
	}
	return nil, false
}
