package vibes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/olfact/sillage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blackOrchid() *core.Fragrance {
	return &core.Fragrance{
		Name:    "Black Orchid",
		Brand:   "Tom Ford",
		Base:    []string{"patchouli", "vanilla"},
		Accords: map[string]float64{"oriental": 80},
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		engine, err := NewEngine()
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("with custom cache", func(t *testing.T) {
		engine, err := NewEngine(WithCache(NewMemoryCache()))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil cache", func(t *testing.T) {
		_, err := NewEngine(WithCache(nil))
		assert.Equal(t, ErrCacheRequired, err)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		engine, err := NewEngine(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})
}

func TestComputeScores(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	t.Run("scores are normalized", func(t *testing.T) {
		scores := engine.ComputeScores(blackOrchid())
		require.NotEmpty(t, scores)

		// Top vibe is exactly 1.0, everything is in (0,1], sorted descending.
		assert.Equal(t, 1.0, scores[0].Score)
		for i, s := range scores {
			assert.Greater(t, s.Score, 0.0)
			assert.LessOrEqual(t, s.Score, 1.0)
			if i > 0 {
				assert.LessOrEqual(t, s.Score, scores[i-1].Score)
			}
		}
	})

	t.Run("patchouli and vanilla base reads dark and sweet", func(t *testing.T) {
		scores := engine.ComputeScores(blackOrchid())
		vibes := make(map[string]float64)
		for _, s := range scores {
			vibes[s.Vibe] = s.Score
		}
		assert.Greater(t, vibes["dark"], 0.0)
		assert.Greater(t, vibes["sweet"], 0.0)
		assert.Greater(t, vibes["oriental"], 0.0)
	})

	t.Run("no taxonomy hit yields empty profile", func(t *testing.T) {
		scores := engine.ComputeScores(&core.Fragrance{Name: "Nothing", Top: []string{"xyzzy"}})
		assert.Empty(t, scores)
	})

	t.Run("substring note fallback", func(t *testing.T) {
		// "bulgarian rose" has no exact taxonomy entry but contains "rose".
		scores := engine.ComputeScores(&core.Fragrance{
			Name: "Rose Thing",
			Top:  []string{"bulgarian rose"},
		})
		require.NotEmpty(t, scores)
		vibes := make(map[string]bool)
		for _, s := range scores {
			vibes[s.Vibe] = true
		}
		assert.True(t, vibes["floral"])
	})

	t.Run("results are cached", func(t *testing.T) {
		cache := NewMemoryCache()
		cached, err := NewEngine(WithCache(cache))
		require.NoError(t, err)

		f := blackOrchid()
		first := cached.ComputeScores(f)
		_, ok := cache.Get(f.ID())
		assert.True(t, ok)

		second := cached.ComputeScores(f)
		assert.Equal(t, first, second)

		cache.Reset()
		_, ok = cache.Get(f.ID())
		assert.False(t, ok)
	})
}

func TestParseQuery(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	t.Run("vibe literals", func(t *testing.T) {
		weights := engine.ParseQuery("dark sweet")
		assert.Greater(t, weights[VibeDark], 0.0)
		assert.Greater(t, weights[VibeSweet], 0.0)
	})

	t.Run("weights sum to one", func(t *testing.T) {
		weights := engine.ParseQuery("fresh summer office vanilla")
		var total float64
		for _, w := range weights {
			total += w
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	})

	t.Run("context phrase distributes weight", func(t *testing.T) {
		weights := engine.ParseQuery("something for summer")
		for _, vibe := range ContextMappings["summer"] {
			assert.Greater(t, weights[vibe], 0.0, "vibe %s", vibe)
		}
	})

	t.Run("note keyword implies vibe", func(t *testing.T) {
		weights := engine.ParseQuery("lots of vetiver please")
		assert.Greater(t, weights[VibeDark], 0.0)
		assert.Greater(t, weights[VibeWoody], 0.0)
	})

	t.Run("no vibe signal", func(t *testing.T) {
		assert.Empty(t, engine.ParseQuery("xyzzy plugh"))
		assert.Empty(t, engine.ParseQuery(""))
	})
}

func TestSearch(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	t.Run("dark sweet finds Black Orchid", func(t *testing.T) {
		matches := engine.Search([]*core.Fragrance{blackOrchid()}, "dark sweet", 5)
		require.Len(t, matches, 1)

		match := matches[0]
		assert.Greater(t, match.Similarity, 0.1)
		assert.True(t,
			containsAny(match.Explanation, "Dark", "Sweet"),
			"explanation %q should mention the shared vibes", match.Explanation)
		assert.LessOrEqual(t, len(match.VibeScores), 5)
	})

	t.Run("no vibe signal yields no matches", func(t *testing.T) {
		matches := engine.Search([]*core.Fragrance{blackOrchid()}, "qwertyuiop", 5)
		assert.Empty(t, matches)
	})

	t.Run("empty query yields no matches", func(t *testing.T) {
		matches := engine.Search([]*core.Fragrance{blackOrchid()}, "   ", 5)
		assert.Empty(t, matches)
	})

	t.Run("unrelated fragrance is excluded", func(t *testing.T) {
		citrus := &core.Fragrance{
			Name:    "Eau Fraiche",
			Brand:   "Versace",
			Top:     []string{"lemon", "bergamot"},
			Accords: map[string]float64{"citrus": 90},
		}
		matches := engine.Search([]*core.Fragrance{citrus}, "dark smoky oud", 5)
		for _, m := range matches {
			assert.Greater(t, m.Similarity, 0.1)
		}
	})

	t.Run("results sorted by similarity", func(t *testing.T) {
		dataset := []*core.Fragrance{
			{Name: "A", Top: []string{"lemon"}, Accords: map[string]float64{"citrus": 90}},
			blackOrchid(),
			{Name: "C", Base: []string{"patchouli", "oud"}, Accords: map[string]float64{"dark": 90}},
		}
		matches := engine.Search(dataset, "dark", 10)
		for i := 1; i < len(matches); i++ {
			assert.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
		}
	})

	t.Run("limit truncates", func(t *testing.T) {
		dataset := make([]*core.Fragrance, 0, 30)
		for i := 0; i < 30; i++ {
			f := blackOrchid()
			f.Name = fmt.Sprintf("Dark Thing %d", i)
			dataset = append(dataset, f)
		}
		matches := engine.Search(dataset, "dark sweet", 3)
		assert.Len(t, matches, 3)
	})

	t.Run("exhaustive scan covers whole dataset", func(t *testing.T) {
		exhaustive, err := NewEngine(WithExhaustiveScan(true))
		require.NoError(t, err)

		// Put the only real match past the bounded-scan horizon.
		dataset := make([]*core.Fragrance, 0, 200)
		for i := 0; i < 199; i++ {
			dataset = append(dataset, &core.Fragrance{Name: fmt.Sprintf("Blank %d", i)})
		}
		dataset = append(dataset, blackOrchid())

		matches := exhaustive.Search(dataset, "dark sweet", 1)
		require.Len(t, matches, 1)
		assert.Equal(t, "Black Orchid", matches[0].Fragrance.Name)

		bounded := engine.Search(dataset, "dark sweet", 1)
		assert.Empty(t, bounded)
	})
}

func TestExplanationBands(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	// No shared top vibes forces the canned band phrases.
	queryVibes := map[Vibe]float64{VibeCitrus: 1.0}
	scores := []core.VibeScore{{Vibe: "dark", Score: 1.0}}

	assert.Equal(t, "Strong vibe match with complementary notes", engine.explain(queryVibes, scores, 0.8))
	assert.Equal(t, "Good vibe alignment with similar character", engine.explain(queryVibes, scores, 0.6))
	assert.Equal(t, "Partial vibe match", engine.explain(queryVibes, scores, 0.2))
}

func TestIsVibeQuery(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	tests := []struct {
		query string
		want  bool
	}{
		{"fresh", true},            // single vibe word
		{"summer", true},           // single context word
		{"aventus", false},         // single word, neither
		{"dark and mysterious", true},
		{"something for the office", true},
		{"tom ford", false},          // two words, no signal
		{"tom ford black orchid", true}, // >= 3 words
		{"light citrusy", true},     // descriptive adjective
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.IsVibeQuery(tt.query))
		})
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
