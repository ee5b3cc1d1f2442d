// Package visiontest provides a deterministic ImageEmbedder test double.
package visiontest

import (
	"context"
	"hash/fnv"
	"io"
	"math"
	"sync/atomic"
)

// Embedder is a test double for vision.ImageEmbedder.
// It allows custom behavior injection via function fields.
type Embedder struct {
	// Dim is the embedding dimensionality. Defaults to 512 (CLIP ViT-B/32).
	Dim int

	// EmbedImageFunc is called by EmbedImage if set.
	EmbedImageFunc func(ctx context.Context, image io.Reader) ([]float32, error)

	// EmbedImageURLFunc is called by EmbedImageURL if set.
	EmbedImageURLFunc func(ctx context.Context, imageURL string) ([]float32, error)

	callCount atomic.Int64
}

// NewEmbedder creates a mock embedder with default deterministic behavior:
// the embedding is a unit vector derived from the input bytes or URL.
func NewEmbedder() *Embedder {
	return &Embedder{Dim: 512}
}

func (e *Embedder) EmbedImage(ctx context.Context, image io.Reader) ([]float32, error) {
	e.callCount.Add(1)
	if e.EmbedImageFunc != nil {
		return e.EmbedImageFunc(ctx, image)
	}
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	return DeterministicVector(string(data), e.Dim), nil
}

func (e *Embedder) EmbedImageURL(ctx context.Context, imageURL string) ([]float32, error) {
	e.callCount.Add(1)
	if e.EmbedImageURLFunc != nil {
		return e.EmbedImageURLFunc(ctx, imageURL)
	}
	return DeterministicVector(imageURL, e.Dim), nil
}

// CallCount returns the number of times any method was called.
func (e *Embedder) CallCount() int {
	return int(e.callCount.Load())
}

// DeterministicVector creates a unit-length embedding from seed text, so the
// same input always yields the same vector.
func DeterministicVector(seed string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(seed))
	state := h.Sum32()

	vector := make([]float32, dim)
	var sumSquares float64
	for i := 0; i < dim; i++ {
		state = state*1664525 + 1013904223 // LCG constants
		vector[i] = float32(state%1000) / 1000.0
		sumSquares += float64(vector[i]) * float64(vector[i])
	}

	if norm := math.Sqrt(sumSquares); norm > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / norm)
		}
	}
	return vector
}
