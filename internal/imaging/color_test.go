package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.NRGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.NRGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.NRGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.NRGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#ff8040" {
		t.Errorf("Hex: got %s, want #ff8040", result.Hex)
	}

	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}

	if result.RGBA.R != 255 || result.RGBA.G != 128 || result.RGBA.B != 64 || result.RGBA.A != 255 {
		t.Errorf("RGBA: got (%d,%d,%d,%d), want (255,128,64,255)",
			result.RGBA.R, result.RGBA.G, result.RGBA.B, result.RGBA.A)
	}

	if result.X != 50 || result.Y != 50 {
		t.Errorf("position: got (%d,%d), want (50,50)", result.X, result.Y)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.NRGBA
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", color.NRGBA{255, 0, 0, 255}, "#ff0000", HSLColor{0, 100, 50}},
		{"pure green", color.NRGBA{0, 255, 0, 255}, "#00ff00", HSLColor{120, 100, 50}},
		{"pure blue", color.NRGBA{0, 0, 255, 255}, "#0000ff", HSLColor{240, 100, 50}},
		{"white", color.NRGBA{255, 255, 255, 255}, "#ffffff", HSLColor{0, 0, 100}},
		{"black", color.NRGBA{0, 0, 0, 255}, "#000000", HSLColor{0, 0, 0}},
		{"gray", color.NRGBA{128, 128, 128, 255}, "#808080", HSLColor{0, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_Translucent(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{200, 100, 50, 128})

	result, err := SampleColor(img, 1, 1)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.RGBA.A != 128 {
		t.Errorf("alpha: got %d, want 128", result.RGBA.A)
	}
	// Straight alpha: the colour is reported without premultiplication
	if d := int(result.RGB.R) - 200; d < -1 || d > 1 {
		t.Errorf("R: got %d, want ~200", result.RGB.R)
	}

	transparent := createInMemoryImage(4, 4, color.NRGBA{})
	result, err = SampleColor(transparent, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#000000" || result.RGBA.A != 0 {
		t.Errorf("transparent pixel: got %s alpha %d", result.Hex, result.RGBA.A)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("SampleColor: got %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	// Test edge coordinates (should succeed)
	tests := []struct {
		name string
		x, y int
	}{
		{"top-left", 0, 0},
		{"top-right", 99, 0},
		{"bottom-left", 0, 99},
		{"bottom-right", 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Errorf("SampleColor failed for valid edge coordinate (%d,%d): %v", tt.x, tt.y, err)
			}
		})
	}
}

func TestSampleColor_OffsetBounds(t *testing.T) {
	img := createPatternImage(20, 20).SubImage(image.Rect(10, 0, 20, 10))

	// (0,0) is relative to the bounds, so it reads the green quadrant
	result, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#00ff00" {
		t.Errorf("Hex: got %s, want #00ff00", result.Hex)
	}
}

func TestSampleDisplay(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name             string
		dx, dy           float64
		canvasW, canvasH int
		wantX, wantY     int
		wantHex          string
	}{
		{"native size", 10, 10, 100, 100, 10, 10, "#ff0000"},
		{"half-size display", 30, 10, 50, 50, 60, 20, "#00ff00"},
		{"double-size display", 50, 150, 200, 200, 25, 75, "#0000ff"},
		{"fraction floors", 99.9, 99.9, 100, 100, 99, 99, "#ffffff"},
		{"tiled canvas", 150, 150, 200, 200, 75, 75, "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleDisplay(img, tt.dx, tt.dy, tt.canvasW, tt.canvasH)
			if err != nil {
				t.Fatalf("SampleDisplay failed: %v", err)
			}
			if result.X != tt.wantX || result.Y != tt.wantY {
				t.Errorf("source pixel: got (%d,%d), want (%d,%d)", result.X, result.Y, tt.wantX, tt.wantY)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
		})
	}
}

func TestSampleDisplay_RedAtOrigin(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	result, err := SampleDisplay(img, 10, 10, 100, 100)
	if err != nil {
		t.Fatalf("SampleDisplay failed: %v", err)
	}
	if result.RGB != (RGBColor{255, 0, 0}) {
		t.Errorf("RGB: got %+v, want (255,0,0)", result.RGB)
	}
}

func TestSampleDisplay_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name             string
		dx, dy           float64
		canvasW, canvasH int
	}{
		{"negative x", -1, 10, 100, 100},
		{"negative fraction", -0.5, 10, 100, 100},
		{"right edge", 100, 10, 100, 100},
		{"below", 10, 250, 100, 100},
		{"empty canvas", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleDisplay(img, tt.dx, tt.dy, tt.canvasW, tt.canvasH)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("SampleDisplay: got %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestWhiteBalance(t *testing.T) {
	tests := []struct {
		name  string
		color RGBColor
		want  ChannelGain
	}{
		{"neutral grey", RGBColor{128, 128, 128}, ChannelGain{100, 100, 100}},
		{"warm", RGBColor{200, 100, 50}, ChannelGain{100, 200, 200}},
		{"slightly blue", RGBColor{180, 190, 200}, ChannelGain{111, 105, 100}},
		{"black floors at one", RGBColor{0, 0, 0}, ChannelGain{100, 100, 100}},
		{"pure red caps at 200", RGBColor{255, 0, 0}, ChannelGain{100, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WhiteBalance(tt.color)
			if got != tt.want {
				t.Errorf("WhiteBalance(%+v): got %+v, want %+v", tt.color, got, tt.want)
			}
		})
	}
}

func TestWhiteBalance_Bounds(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				gain := WhiteBalance(RGBColor{uint8(r), uint8(g), uint8(b)})
				for _, v := range []float64{gain.Red, gain.Green, gain.Blue} {
					if v < 1 || v > 200 {
						t.Fatalf("WhiteBalance(%d,%d,%d): gain %v outside [1,200]", r, g, b, v)
					}
				}
				// The brightest channel is never amplified
				if gain.Red != 100 && gain.Green != 100 && gain.Blue != 100 {
					t.Fatalf("WhiteBalance(%d,%d,%d): no channel at 100: %+v", r, g, b, gain)
				}
			}
		}
	}
}
