package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecodeFailure reports that source bytes are not a valid image.
// Callers treat it as the end of the current image session.
var ErrDecodeFailure = errors.New("decode failure")

// Source is an encoded image held in memory. It is decoded afresh on every
// render so that no decoded raster is shared between renders.
//
// A Source is immutable after construction.
type Source struct {
	// Name is a display name for the source, usually the file name.
	Name string

	data []byte
}

// NewSource wraps encoded image bytes. The slice is copied.
func NewSource(name string, data []byte) *Source {
	return &Source{Name: name, data: append([]byte(nil), data...)}
}

// ReadSource reads an encoded image from disk without decoding it.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
func ReadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &Source{Name: filepath.Base(path), data: data}, nil
}

// Size returns the encoded size in bytes.
func (s *Source) Size() int64 {
	return int64(len(s.data))
}

// Decode decodes the source into a raster.
func (s *Source) Decode() (image.Image, error) {
	img, _, err := Decode(s.data)
	return img, err
}

// Decode decodes an encoded image and returns the raster together with the
// registered format name ("png", "jpeg", "gif", "bmp" or "webp").
// EXIF orientation is applied for JPEG input.
//
// Any failure, including an empty image, wraps ErrDecodeFailure.
func Decode(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("%w: image has no pixels", ErrDecodeFailure)
	}
	return img, format, nil
}

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	// Name is the source's display name.
	Name string `json:"name"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that accepted the bytes, e.g. "png" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the encoded size of the source in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// LoadImageInfo decodes src and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(src *Source) (*ImageInfo, error) {
	img, format, err := Decode(src.data)
	if err != nil {
		return nil, err
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Name:       src.Name,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  src.Size(),
	}, nil
}
