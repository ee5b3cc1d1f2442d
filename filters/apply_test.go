package filters

import (
	"testing"
	"time"

	"github.com/olfact/sillage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() []*core.Fragrance {
	return []*core.Fragrance{
		{
			Name:        "Black Orchid",
			Brand:       "Tom Ford",
			Country:     "United States",
			Year:        2006,
			Rating:      4.1,
			RatingCount: 12000,
			Price:       180,
			OilType:     "Eau de Parfum (EDP)",
			Base:        []string{"patchouli", "vanilla"},
			Accords:     map[string]float64{"oriental": 80, "warm spicy": 60},
		},
		{
			Name:    "Light Blue",
			Brand:   "Dolce & Gabbana",
			Country: "Italy",
			Year:    2001,
			Rating:  3.9,
			Price:   90,
			OilType: "EDT",
			Top:     []string{"sicilian lemon", "apple"},
			Accords: map[string]float64{"citrus": 90, "fresh": 70},
		},
		{
			Name:  "Mystery Sample",
			Brand: "Unknown House",
			// No price, year, rating, notes or accords.
		},
	}
}

func TestApplyDefaults(t *testing.T) {
	dataset := testDataset()

	t.Run("default filters are a no-op", func(t *testing.T) {
		result := Apply(dataset, Defaults())
		assert.Equal(t, dataset, result)
	})

	t.Run("zero value is inactive", func(t *testing.T) {
		var f Filters
		assert.False(t, f.Active())
		assert.Zero(t, f.CountActive())
		assert.Equal(t, dataset, Apply(dataset, f))
	})

	t.Run("zero range max is unbounded", func(t *testing.T) {
		f := Filters{PriceRange: PriceRange{Min: 100}}
		result := Apply(dataset, f)
		// Black Orchid at 180 passes the open-ended range; so does the
		// unpriced record.
		require.Len(t, result, 2)
		assert.Equal(t, "Black Orchid", result[0].Name)
		assert.Equal(t, "Mystery Sample", result[1].Name)
	})

	t.Run("idempotent", func(t *testing.T) {
		f := Defaults()
		f.Brands = []string{"Tom Ford"}
		once := Apply(dataset, f)
		twice := Apply(once, f)
		assert.Equal(t, once, twice)
	})

	t.Run("order preserved", func(t *testing.T) {
		f := Defaults()
		f.MinRating = 3.5
		result := Apply(dataset, f)
		require.Len(t, result, 2)
		assert.Equal(t, "Black Orchid", result[0].Name)
		assert.Equal(t, "Light Blue", result[1].Name)
	})
}

func TestApplyBrandAndOrigin(t *testing.T) {
	dataset := testDataset()

	t.Run("brand membership", func(t *testing.T) {
		f := Defaults()
		f.Brands = []string{"Tom Ford"}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Black Orchid", result[0].Name)
	})

	t.Run("origin membership requires country", func(t *testing.T) {
		f := Defaults()
		f.BrandOrigins = []string{"Italy"}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Light Blue", result[0].Name)
	})
}

func TestApplyAccords(t *testing.T) {
	dataset := testDataset()

	t.Run("bidirectional substring", func(t *testing.T) {
		// "spicy" matches the declared "warm spicy" accord.
		f := Defaults()
		f.Accords = []string{"spicy"}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Black Orchid", result[0].Name)
	})

	t.Run("no accords means rejection", func(t *testing.T) {
		f := Defaults()
		f.Accords = []string{"citrus"}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Light Blue", result[0].Name)
	})
}

func TestApplyWearContext(t *testing.T) {
	dataset := testDataset()

	t.Run("night matches oriental accord", func(t *testing.T) {
		f := Defaults()
		f.WearContexts = []WearContext{ContextNight}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Black Orchid", result[0].Name)
	})

	t.Run("contexts OR together", func(t *testing.T) {
		f := Defaults()
		f.WearContexts = []WearContext{ContextDay, ContextNight}
		result := Apply(dataset, f)
		assert.Len(t, result, 2)
	})
}

func TestApplyNotes(t *testing.T) {
	dataset := testDataset()

	t.Run("include is conjunctive", func(t *testing.T) {
		f := Defaults()
		f.NotesInclude = []string{"patchouli", "vanilla"}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Black Orchid", result[0].Name)
	})

	t.Run("include with bidirectional match", func(t *testing.T) {
		// "lemon" matches "sicilian lemon".
		f := Defaults()
		f.NotesInclude = []string{"lemon"}
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Light Blue", result[0].Name)
	})

	t.Run("exclude rejects on any match", func(t *testing.T) {
		f := Defaults()
		f.NotesExclude = []string{"vanilla"}
		result := Apply(dataset, f)
		for _, fragrance := range result {
			assert.NotEqual(t, "Black Orchid", fragrance.Name)
		}
	})
}

func TestApplyNumericRanges(t *testing.T) {
	dataset := testDataset()

	t.Run("price range inclusive", func(t *testing.T) {
		f := Defaults()
		f.PriceRange = PriceRange{Min: 90, Max: 90}
		result := Apply(dataset, f)
		// Light Blue at exactly 90 passes; Mystery Sample has no price
		// and passes the range check by absence.
		assert.Len(t, result, 2)
	})

	t.Run("year range", func(t *testing.T) {
		f := Defaults()
		f.YearRange = YearRange{Min: 2005, Max: time.Now().Year()}
		result := Apply(dataset, f)
		require.Len(t, result, 2)
		assert.Equal(t, "Black Orchid", result[0].Name)
		assert.Equal(t, "Mystery Sample", result[1].Name)
	})

	t.Run("min rating disqualifies unrated", func(t *testing.T) {
		f := Defaults()
		f.MinRating = 4.0
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Black Orchid", result[0].Name)
	})

	t.Run("min review count", func(t *testing.T) {
		f := Defaults()
		f.MinReviewCount = 10000
		result := Apply(dataset, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Black Orchid", result[0].Name)
	})
}

func TestApplyConcentration(t *testing.T) {
	dataset := testDataset()

	f := Defaults()
	f.Concentrations = []string{"edp"}
	result := Apply(dataset, f)
	require.Len(t, result, 1)
	assert.Equal(t, "Black Orchid", result[0].Name)
}

func TestApplyHouseTypeIsANoOp(t *testing.T) {
	dataset := testDataset()

	f := Defaults()
	f.HouseTypes = []string{"Niche"}
	result := Apply(dataset, f)
	// Active but unevaluated: nothing is filtered out by house type.
	assert.Len(t, result, len(dataset))
}

func TestCountActive(t *testing.T) {
	f := Defaults()
	assert.Equal(t, 0, f.CountActive())
	assert.False(t, f.Active())

	f.Brands = []string{"Tom Ford"}
	f.MinRating = 4
	f.NotesExclude = []string{"oud"}
	assert.Equal(t, 3, f.CountActive())
	assert.True(t, f.Active())
}
