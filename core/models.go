package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities, generated by content-based
// hashing so that identical content always produces the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Fragrance is a single catalogue record. Records are immutable once loaded;
// the dataset is a read-only snapshot for the process lifetime.
type Fragrance struct {
	Name        string             `json:"name"`
	Brand       string             `json:"brand,omitempty"`
	Year        int                `json:"year,omitempty"`
	Country     string             `json:"country,omitempty"`
	Top         []string           `json:"top,omitempty"`
	Middle      []string           `json:"middle,omitempty"`
	Base        []string           `json:"base,omitempty"`
	Accords     map[string]float64 `json:"accords,omitempty"` // accord name -> intensity 0-100
	Rating      float64            `json:"rating,omitempty"`  // 0-5
	RatingCount int                `json:"ratingCount,omitempty"`
	Price       float64            `json:"price,omitempty"`
	Image       string             `json:"image,omitempty"`
	Description string             `json:"description,omitempty"`
	Gender      string             `json:"gender,omitempty"`
	OilType     string             `json:"oilType,omitempty"` // free-text concentration hint (EDT, EDP, ...)
}

// Key returns the canonical string identity of the fragrance.
// A fragrance has no identity beyond its (name, brand) pair.
func (f *Fragrance) Key() string {
	return strings.ToLower(f.Name) + "|" + strings.ToLower(f.Brand)
}

// ID returns the content-derived identifier for the (name, brand) pair.
// It is the cache and membership key used throughout the module.
func (f *Fragrance) ID() ID {
	return IDFromContent(f.Key())
}

// SameFragrance reports whether two records refer to the same fragrance,
// comparing the (name, brand) pair case-insensitively.
func (f *Fragrance) SameFragrance(other *Fragrance) bool {
	return other != nil && f.Key() == other.Key()
}

// AllNotes returns the top, middle and base notes as a single lowercased
// list, skipping empty entries. Order follows perception order.
func (f *Fragrance) AllNotes() []string {
	notes := make([]string, 0, len(f.Top)+len(f.Middle)+len(f.Base))
	for _, group := range [][]string{f.Top, f.Middle, f.Base} {
		for _, n := range group {
			n = strings.ToLower(strings.TrimSpace(n))
			if n != "" {
				notes = append(notes, n)
			}
		}
	}
	return notes
}

// SearchResult is a lexically scored fragrance.
type SearchResult struct {
	Fragrance *Fragrance
	Score     int
}

// VibeScore is a (vibe category, normalized score) pair. Scores are in [0,1]
// and a fragrance's top vibe always scores exactly 1.0.
type VibeScore struct {
	Vibe  string  `json:"vibe"`
	Score float64 `json:"score"`
}

// VibeMatch is a vibe-search hit with its similarity, a human-readable
// explanation and the fragrance's top vibe scores.
type VibeMatch struct {
	Fragrance   *Fragrance
	Similarity  float64
	Explanation string
	VibeScores  []VibeScore
}
