package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"bmp", FormatBMP, false},
		{"tiff", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExportFormat(%q) error: %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseExportFormat(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, time.May, 1, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		format ExportFormat
		want   string
	}{
		{FormatPNG, "lumina-texture-2024-05-01.png"},
		{FormatJPEG, "lumina-texture-2024-05-01.jpg"},
		{FormatBMP, "lumina-texture-2024-05-01.bmp"},
	}

	for _, tt := range tests {
		if got := ExportFilename(now, tt.format); got != tt.want {
			t.Errorf("ExportFilename(%s): got %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestEncodeImage_DecodesBack(t *testing.T) {
	img := createPatternImage(12, 8)

	for _, format := range []ExportFormat{FormatPNG, FormatJPEG, FormatBMP} {
		t.Run(string(format), func(t *testing.T) {
			data, err := EncodeImage(img, format)
			if err != nil {
				t.Fatalf("EncodeImage failed: %v", err)
			}
			decoded, name, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if name != string(format) {
				t.Errorf("format: got %s, want %s", name, format)
			}
			if decoded.Bounds().Dx() != 12 || decoded.Bounds().Dy() != 8 {
				t.Errorf("size: got %v, want 12x8", decoded.Bounds())
			}
		})
	}
}

func TestExport(t *testing.T) {
	img := createInMemoryImage(30, 20, color.NRGBA{200, 10, 10, 255})
	now := time.Date(2025, time.January, 9, 8, 0, 0, 0, time.UTC)

	res, data, err := Export(img, FormatPNG, now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if res.Filename != "lumina-texture-2025-01-09.png" {
		t.Errorf("Filename: got %s", res.Filename)
	}
	if res.Width != 30 || res.Height != 20 {
		t.Errorf("size: got %dx%d, want 30x20", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", res.MimeType)
	}
	if res.SizeBytes != len(data) {
		t.Errorf("SizeBytes: got %d, want %d", res.SizeBytes, len(data))
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a PNG: %v", err)
	}
	r, g, b, _ := decoded.At(5, 5).RGBA()
	if r>>8 != 200 || g>>8 != 10 || b>>8 != 10 {
		t.Errorf("pixel: got (%d,%d,%d), want (200,10,10)", r>>8, g>>8, b>>8)
	}
}

func TestExport_KeepsTransparency(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{50, 60, 70, 0})

	_, data, err := Export(img, FormatPNG, time.Now())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if _, _, _, a := decoded.At(1, 1).RGBA(); a != 0 {
		t.Errorf("alpha: got %d, want 0", a)
	}
}

func TestPreview(t *testing.T) {
	frame := &Frame{
		Image:      image.NewNRGBA(image.Rect(0, 0, 40, 20)),
		TileWidth:  20,
		TileHeight: 10,
		Tiling:     TileConfig{Enabled: true, Repair: SeamMirror},
	}

	res, err := Preview(frame)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if res.Width != 40 || res.Height != 20 || res.TileWidth != 20 || res.TileHeight != 10 {
		t.Errorf("sizes: got %+v", res)
	}
	if !res.Tiled || res.SeamRepair != "mirror" {
		t.Errorf("tiling: got tiled=%v repair=%s", res.Tiled, res.SeamRepair)
	}
	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("ImageBase64 is not valid base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("ImageBase64 is not a PNG: %v", err)
	}
}
