package vibes

// Vibe is a coarse mood/style category used as a semantic search axis.
type Vibe string

const (
	VibeFresh     Vibe = "fresh"
	VibeClean     Vibe = "clean"
	VibeSweet     Vibe = "sweet"
	VibeDark      Vibe = "dark"
	VibeWoody     Vibe = "woody"
	VibeSpicy     Vibe = "spicy"
	VibePowdery   Vibe = "powdery"
	VibeSmoky     Vibe = "smoky"
	VibeFloral    Vibe = "floral"
	VibeCitrus    Vibe = "citrus"
	VibeAquatic   Vibe = "aquatic"
	VibeGreen     Vibe = "green"
	VibeWarm      Vibe = "warm"
	VibeCool      Vibe = "cool"
	VibeGourmand  Vibe = "gourmand"
	VibeOriental  Vibe = "oriental"
	VibeMasculine Vibe = "masculine"
	VibeFeminine  Vibe = "feminine"
	VibeUnisex    Vibe = "unisex"
)

// AllVibes is the fixed enumeration of vibe categories, in canonical order.
var AllVibes = []Vibe{
	VibeFresh, VibeClean, VibeSweet, VibeDark, VibeWoody, VibeSpicy,
	VibePowdery, VibeSmoky, VibeFloral, VibeCitrus, VibeAquatic, VibeGreen,
	VibeWarm, VibeCool, VibeGourmand, VibeOriental, VibeMasculine,
	VibeFeminine, VibeUnisex,
}

// Mapping describes how a vibe is grounded in the fragrance domain:
// the notes and accords that are representative of it, and a scalar weight
// controlling how strongly a hit contributes. Weights below 1.0 are used for
// contextual categories (masculine/feminine/unisex) to reduce false positives.
type Mapping struct {
	Notes   []string
	Accords []string
	Weight  float64
}

// Taxonomy maps every vibe to its note/accord grounding. It is static,
// process-wide and read-only; weights are fixed constants, never learned.
var Taxonomy = map[Vibe]Mapping{
	VibeFresh: {
		Notes: []string{
			"bergamot", "lemon", "lime", "grapefruit", "orange", "mandarin", "neroli",
			"mint", "peppermint", "spearmint", "eucalyptus", "green tea", "cucumber",
			"watermelon", "apple", "pear", "aloe", "bamboo",
		},
		Accords: []string{"fresh", "citrus", "green", "aquatic"},
		Weight:  1.0,
	},
	VibeClean: {
		Notes: []string{
			"soap", "cotton", "linen", "white musk", "aldehydes", "lily of the valley",
			"jasmine", "rose", "lavender", "iris", "violet", "peony", "magnolia",
			"ozone", "water", "rain",
		},
		Accords: []string{"fresh", "floral", "white floral", "aldehydic"},
		Weight:  1.0,
	},
	VibeSweet: {
		Notes: []string{
			"vanilla", "caramel", "honey", "sugar", "maple", "chocolate", "cocoa",
			"praline", "almond", "hazelnut", "toffee", "cotton candy", "marshmallow",
			"fruity", "peach", "apricot", "strawberry", "raspberry", "cherry", "plum",
		},
		Accords: []string{"sweet", "gourmand", "fruity", "vanilla"},
		Weight:  1.0,
	},
	VibeDark: {
		Notes: []string{
			"patchouli", "oud", "amber", "labdanum", "benzoin", "incense", "myrrh",
			"frankincense", "vetiver", "leather", "tobacco", "coffee", "dark chocolate",
			"black pepper", "cinnamon", "clove", "nutmeg", "cardamom",
		},
		Accords: []string{"dark", "oriental", "woody", "spicy", "amber"},
		Weight:  1.0,
	},
	VibeWoody: {
		Notes: []string{
			"cedar", "sandalwood", "pine", "fir", "oak", "birch", "teak", "mahogany",
			"vetiver", "guaiac wood", "palo santo", "agarwood", "oud", "ebony",
		},
		Accords: []string{"woody", "forest", "dry woods"},
		Weight:  1.0,
	},
	VibeSpicy: {
		Notes: []string{
			"pepper", "black pepper", "pink pepper", "cardamom", "cinnamon", "clove",
			"nutmeg", "ginger", "cumin", "coriander", "saffron", "turmeric", "anise",
			"star anise", "fennel",
		},
		Accords: []string{"spicy", "oriental", "warm spicy"},
		Weight:  1.0,
	},
	VibePowdery: {
		Notes: []string{
			"iris", "orris", "violet", "heliotrope", "mimosa", "almond", "tonka bean",
			"vanilla", "musk", "amber", "sandalwood",
		},
		Accords: []string{"powdery", "soft", "floral"},
		Weight:  1.0,
	},
	VibeSmoky: {
		Notes: []string{
			"smoke", "incense", "frankincense", "myrrh", "oud", "leather", "tobacco",
			"birch tar", "guaiac wood", "cade", "labdanum",
		},
		Accords: []string{"smoky", "dark", "woody"},
		Weight:  1.0,
	},
	VibeFloral: {
		Notes: []string{
			"rose", "jasmine", "lily", "lily of the valley", "peony", "magnolia",
			"gardenia", "tuberose", "ylang-ylang", "neroli", "orange blossom",
			"lavender", "violet", "iris", "orchid", "freesia", "hyacinth",
		},
		Accords: []string{"floral", "white floral", "rose", "jasmine"},
		Weight:  1.0,
	},
	VibeCitrus: {
		Notes: []string{
			"lemon", "lime", "grapefruit", "orange", "mandarin", "bergamot", "yuzu",
			"kumquat", "tangerine", "clementine", "bitter orange",
		},
		Accords: []string{"citrus", "fresh"},
		Weight:  1.0,
	},
	VibeAquatic: {
		Notes: []string{
			"water", "ozone", "calone", "seaweed", "salt", "marine", "aquatic",
			"rain", "dew", "water lily", "lotus",
		},
		Accords: []string{"aquatic", "fresh", "marine"},
		Weight:  1.0,
	},
	VibeGreen: {
		Notes: []string{
			"grass", "green tea", "matcha", "galbanum", "violet leaf", "tomato leaf",
			"basil", "mint", "eucalyptus", "pine", "fir", "bamboo", "cucumber",
		},
		Accords: []string{"green", "fresh", "herbal"},
		Weight:  1.0,
	},
	VibeWarm: {
		Notes: []string{
			"vanilla", "amber", "tonka bean", "benzoin", "cinnamon", "nutmeg",
			"cardamom", "sandalwood", "cedar", "honey", "caramel", "cocoa",
		},
		Accords: []string{"warm", "amber", "gourmand", "oriental"},
		Weight:  1.0,
	},
	VibeCool: {
		Notes: []string{
			"mint", "eucalyptus", "menthol", "camphor", "ice", "water", "ozone",
			"cucumber", "green tea", "aloe",
		},
		Accords: []string{"fresh", "cool", "aquatic"},
		Weight:  1.0,
	},
	VibeGourmand: {
		Notes: []string{
			"vanilla", "caramel", "chocolate", "coffee", "honey", "maple", "praline",
			"almond", "hazelnut", "toffee", "cotton candy", "marshmallow", "cocoa",
		},
		Accords: []string{"gourmand", "sweet", "vanilla"},
		Weight:  1.0,
	},
	VibeOriental: {
		Notes: []string{
			"amber", "incense", "oud", "patchouli", "vanilla", "tonka bean",
			"benzoin", "labdanum", "spices", "cinnamon", "clove", "cardamom",
		},
		Accords: []string{"oriental", "amber", "spicy"},
		Weight:  1.0,
	},
	VibeMasculine: {
		Notes: []string{
			"vetiver", "cedar", "leather", "tobacco", "oud", "amber", "patchouli",
			"bergamot", "lavender", "sage", "juniper", "whiskey", "rum",
		},
		Accords: []string{"woody", "spicy", "fresh"},
		Weight:  0.8, // contextual category, weaker signal
	},
	VibeFeminine: {
		Notes: []string{
			"rose", "jasmine", "lily", "peony", "violet", "iris", "vanilla",
			"peach", "apricot", "strawberry", "cherry", "powdery",
		},
		Accords: []string{"floral", "sweet", "powdery"},
		Weight:  0.8,
	},
	VibeUnisex: {
		Notes: []string{
			"bergamot", "lavender", "jasmine", "rose", "cedar", "sandalwood",
			"amber", "musk", "vanilla", "vetiver",
		},
		Accords: []string{"fresh", "woody", "floral"},
		Weight:  0.6,
	},
}

// ContextMappings maps free-text context phrases to the vibe combinations
// they imply. Phrases are matched as substrings of the query.
var ContextMappings = map[string][]Vibe{
	// Time / season
	"summer": {VibeFresh, VibeCitrus, VibeAquatic, VibeCool},
	"winter": {VibeWarm, VibeDark, VibeWoody, VibeSpicy},
	"spring": {VibeFloral, VibeFresh, VibeGreen},
	"fall":   {VibeWoody, VibeSpicy, VibeWarm, VibeOriental},
	"autumn": {VibeWoody, VibeSpicy, VibeWarm, VibeOriental},

	// Occasions
	"office":       {VibeClean, VibeFresh, VibeUnisex},
	"professional": {VibeClean, VibeFresh, VibeUnisex},
	"date":         {VibeSweet, VibeWarm, VibeFloral, VibeGourmand},
	"date night":   {VibeSweet, VibeWarm, VibeDark, VibeOriental},
	"everyday":     {VibeFresh, VibeClean, VibeUnisex},
	"casual":       {VibeFresh, VibeClean, VibeCitrus},
	"formal":       {VibeWoody, VibeSpicy, VibeOriental, VibeDark},
	"evening":      {VibeDark, VibeWarm, VibeOriental, VibeWoody},
	"night":        {VibeDark, VibeWarm, VibeOriental, VibeWoody},

	// Intensity
	"light":   {VibeFresh, VibeClean, VibeCitrus, VibeAquatic},
	"subtle":  {VibeClean, VibeFresh, VibePowdery},
	"strong":  {VibeDark, VibeWoody, VibeSpicy, VibeOriental},
	"intense": {VibeDark, VibeWoody, VibeSpicy, VibeSmoky},

	// Additional descriptors
	"masculine": {VibeMasculine, VibeWoody, VibeSpicy, VibeFresh},
	"feminine":  {VibeFeminine, VibeFloral, VibeSweet, VibePowdery},
}
