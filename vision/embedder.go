package vision

import (
	"context"
	"io"
)

// ImageEmbedder produces fixed-length numeric vectors representing an
// image's visual content. The model behind it is a black box; all vectors
// from one embedder share the same dimensionality.
// Implementations must be thread-safe for concurrent use.
type ImageEmbedder interface {
	// EmbedImage generates an embedding for raw image data.
	EmbedImage(ctx context.Context, image io.Reader) ([]float32, error)

	// EmbedImageURL fetches an image by URL and generates its embedding.
	EmbedImageURL(ctx context.Context, imageURL string) ([]float32, error)
}
