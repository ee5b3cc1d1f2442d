package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCSV(t *testing.T) {
	t.Run("comma delimited", func(t *testing.T) {
		csvDoc := "Perfume,Brand,Year\nBlack Orchid,Tom Ford,2006.0\nLight Blue,Dolce & Gabbana,2001\n"
		var out bytes.Buffer

		n, err := ConvertCSV(strings.NewReader(csvDoc), &out)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		var records []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "Black Orchid", records[0]["Perfume"])
		assert.Equal(t, "2006.0", records[0]["Year"])
	})

	t.Run("semicolon delimited", func(t *testing.T) {
		csvDoc := "Perfume;Brand;Top\nLight Blue;Dolce & Gabbana;Sicilian Lemon, Apple\n"
		var out bytes.Buffer

		n, err := ConvertCSV(strings.NewReader(csvDoc), &out)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		var records []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &records))
		// Commas inside fields survive when the delimiter is a semicolon.
		assert.Equal(t, "Sicilian Lemon, Apple", records[0]["Top"])
	})

	t.Run("quoted fields", func(t *testing.T) {
		csvDoc := "Perfume,Brand\n\"Bois d'Argent, Intense\",Dior\n"
		var out bytes.Buffer

		n, err := ConvertCSV(strings.NewReader(csvDoc), &out)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		var records []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &records))
		assert.Equal(t, "Bois d'Argent, Intense", records[0]["Perfume"])
	})

	t.Run("empty input", func(t *testing.T) {
		var out bytes.Buffer
		_, err := ConvertCSV(strings.NewReader(""), &out)
		require.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("round-trips through Parse", func(t *testing.T) {
		csvDoc := "Perfume,Brand,mainaccord1\nBlack Orchid,Tom Ford,oriental\n"
		var out bytes.Buffer
		_, err := ConvertCSV(strings.NewReader(csvDoc), &out)
		require.NoError(t, err)

		fragrances, err := Parse(&out)
		require.NoError(t, err)
		require.Len(t, fragrances, 1)
		assert.Equal(t, "Black Orchid", fragrances[0].Name)
		assert.Equal(t, map[string]float64{"oriental": 100}, fragrances[0].Accords)
	})
}
