package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
)

// ExportFormat is a raster encoding offered for download.
type ExportFormat string

// Supported export formats. PNG is the default.
const (
	FormatPNG  ExportFormat = "png"
	FormatJPEG ExportFormat = "jpeg"
	FormatBMP  ExportFormat = "bmp"
)

// ParseExportFormat validates a format name. The empty string selects PNG.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// MimeType returns the media type of the format.
func (f ExportFormat) MimeType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// Extension returns the file extension of the format, without the dot.
func (f ExportFormat) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

func (f ExportFormat) encoder() imgio.Encoder {
	switch f {
	case FormatJPEG:
		return imgio.JPEGEncoder(100)
	case FormatBMP:
		return imgio.BMPEncoder()
	default:
		return imgio.PNGEncoder()
	}
}

// EncodeImage encodes img in the given format.
func EncodeImage(img image.Image, format ExportFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := format.encoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	return buf.Bytes(), nil
}

// ExportFilename returns the download name for an export made at now,
// e.g. "lumina-texture-2024-05-01.png".
func ExportFilename(now time.Time, format ExportFormat) string {
	return fmt.Sprintf("lumina-texture-%s.%s", now.Format("2006-01-02"), format.Extension())
}

// ExportResult contains an encoded raster ready for download.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Path        string `json:"path,omitempty"`
}

// Export encodes img and describes the result. The encoded bytes are
// returned separately so callers can write them to disk or inline them.
func Export(img image.Image, format ExportFormat, now time.Time) (*ExportResult, []byte, error) {
	data, err := EncodeImage(img, format)
	if err != nil {
		return nil, nil, err
	}
	return &ExportResult{
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		Filename:  ExportFilename(now, format),
		MimeType:  format.MimeType(),
		SizeBytes: len(data),
	}, data, nil
}

// PreviewResult is a rendered canvas encoded as base64 PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	TileWidth   int    `json:"tile_width"`
	TileHeight  int    `json:"tile_height"`
	Tiled       bool   `json:"tiled"`
	SeamRepair  string `json:"seam_repair"`
	Synthesized bool   `json:"synthesized"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview encodes a frame as base64 PNG for display.
func Preview(f *Frame) (*PreviewResult, error) {
	data, err := EncodeImage(f.Image, FormatPNG)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		Width:       f.Width(),
		Height:      f.Height(),
		TileWidth:   f.TileWidth,
		TileHeight:  f.TileHeight,
		Tiled:       f.Tiling.Enabled,
		SeamRepair:  f.Tiling.Effective().String(),
		Synthesized: f.Synthesized,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    FormatPNG.MimeType(),
	}, nil
}
