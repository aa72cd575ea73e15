package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrOutOfBounds reports a colour-pick coordinate that maps outside the
// source raster. Pickers absorb it and emit no sample.
var ErrOutOfBounds = errors.New("sample outside image bounds")

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a sampled pixel in several representations, plus the
// source pixel it was read from.
type ColorResult struct {
	X    int       `json:"x"`    // Source pixel column
	Y    int       `json:"y"`    // Source pixel row
	Hex  string    `json:"hex"`  // Hex format "#rrggbb" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor reads the straight-alpha colour of the pixel at (x, y).
//
// Coordinates are 0-based with origin at the top-left of the image bounds.
// Coordinates outside the image return ErrOutOfBounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if !image.Pt(px, py).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d): %w", x, y, ErrOutOfBounds)
	}

	c := img.At(px, py)
	_, _, _, a := c.RGBA()
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent: report black with zero alpha.
		cf = colorful.Color{}
	}
	r8, g8, b8 := cf.RGB255()
	h, s, l := cf.Hsl()

	return &ColorResult{
		X:    x,
		Y:    y,
		Hex:  cf.Hex(),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: uint8(a >> 8)},
		HSL:  HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
	}, nil
}

// SampleDisplay maps a display-space coordinate on a canvasW x canvasH
// rendering back to source pixel space and samples src there.
//
// The mapping uses the ratio of source to canvas dimensions and floors to
// integer pixel indices. A coordinate that lands outside the source returns
// ErrOutOfBounds.
func SampleDisplay(src image.Image, dx, dy float64, canvasW, canvasH int) (*ColorResult, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, fmt.Errorf("empty canvas: %w", ErrOutOfBounds)
	}
	b := src.Bounds()
	scaleX := float64(b.Dx()) / float64(canvasW)
	scaleY := float64(b.Dy()) / float64(canvasH)

	sx := math.Floor(dx * scaleX)
	sy := math.Floor(dy * scaleY)
	if sx < 0 || sy < 0 || sx >= float64(b.Dx()) || sy >= float64(b.Dy()) {
		return nil, fmt.Errorf("display (%g,%g) -> source (%g,%g): %w", dx, dy, sx, sy, ErrOutOfBounds)
	}
	return SampleColor(src, int(sx), int(sy))
}

// WhiteBalance derives the channel gain that neutralises c: each channel is
// scaled by max(R,G,B)/channel so the sampled colour becomes grey.
//
// Channels are floored at 1 to avoid division by zero and the resulting gain
// is rounded to a whole percent and clamped to [1, 200].
func WhiteBalance(c RGBColor) ChannelGain {
	r := math.Max(float64(c.R), 1)
	g := math.Max(float64(c.G), 1)
	b := math.Max(float64(c.B), 1)
	maxVal := math.Max(r, math.Max(g, b))

	gain := func(v float64) float64 {
		return math.Min(math.Max(math.Round(maxVal/v*100), 1), 200)
	}
	return ChannelGain{Red: gain(r), Green: gain(g), Blue: gain(b)}
}
