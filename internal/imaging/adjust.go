package imaging

import (
	"fmt"
	"math"
)

// Adjustments is the parameter vector describing the current edit.
//
// Every field has a closed range. Values of 100 for the percentage fields and
// 0 for the others are the identity: an image rendered with
// DefaultAdjustments() is reproduced pixel for pixel.
//
//   - Brightness, Contrast, Saturation: 0-200 (100 = unchanged)
//   - Hue: -180 to 180 degrees
//   - Sepia: 0-100 (used as a warmth control)
//   - Blur: 0-20 pixel radius
//   - Sharpen: 0-10 kernel strength
//   - Invert: 0 or 100
//   - Red, Green, Blue: 0-200 channel gain (100 = unchanged)
type Adjustments struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Hue        float64 `json:"hue"`
	Sepia      float64 `json:"sepia"`
	Blur       float64 `json:"blur"`
	Sharpen    float64 `json:"sharpen"`
	Invert     float64 `json:"invert"`
	Red        float64 `json:"red"`
	Green      float64 `json:"green"`
	Blue       float64 `json:"blue"`
}

// AdjustmentRange describes the closed range and identity value of one field.
type AdjustmentRange struct {
	Name     string  `json:"name"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Identity float64 `json:"identity"`
}

// AdjustmentRanges lists every adjustment field in wire order.
var AdjustmentRanges = []AdjustmentRange{
	{Name: "brightness", Min: 0, Max: 200, Identity: 100},
	{Name: "contrast", Min: 0, Max: 200, Identity: 100},
	{Name: "saturation", Min: 0, Max: 200, Identity: 100},
	{Name: "hue", Min: -180, Max: 180, Identity: 0},
	{Name: "sepia", Min: 0, Max: 100, Identity: 0},
	{Name: "blur", Min: 0, Max: 20, Identity: 0},
	{Name: "sharpen", Min: 0, Max: 10, Identity: 0},
	{Name: "invert", Min: 0, Max: 100, Identity: 0},
	{Name: "red", Min: 0, Max: 200, Identity: 100},
	{Name: "green", Min: 0, Max: 200, Identity: 100},
	{Name: "blue", Min: 0, Max: 200, Identity: 100},
}

// DefaultAdjustments returns the identity adjustment vector.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
		Red:        100,
		Green:      100,
		Blue:       100,
	}
}

// field returns a pointer to the named field, or nil for unknown names.
func (a *Adjustments) field(name string) *float64 {
	switch name {
	case "brightness":
		return &a.Brightness
	case "contrast":
		return &a.Contrast
	case "saturation":
		return &a.Saturation
	case "hue":
		return &a.Hue
	case "sepia":
		return &a.Sepia
	case "blur":
		return &a.Blur
	case "sharpen":
		return &a.Sharpen
	case "invert":
		return &a.Invert
	case "red":
		return &a.Red
	case "green":
		return &a.Green
	case "blue":
		return &a.Blue
	}
	return nil
}

// Get returns the value of the named field.
func (a Adjustments) Get(name string) (float64, error) {
	p := a.field(name)
	if p == nil {
		return 0, fmt.Errorf("unknown adjustment: %s", name)
	}
	return *p, nil
}

// Set returns a copy of a with the named field set to value, clamped to the
// field's range.
func (a Adjustments) Set(name string, value float64) (Adjustments, error) {
	p := a.field(name)
	if p == nil {
		return a, fmt.Errorf("unknown adjustment: %s", name)
	}
	*p = value
	return a.Clamp(), nil
}

// Clamp returns a copy of a with every field forced into its range.
// NaN resets a field to its identity value. Invert snaps to 0 or 100.
func (a Adjustments) Clamp() Adjustments {
	for _, r := range AdjustmentRanges {
		p := a.field(r.Name)
		switch {
		case math.IsNaN(*p):
			*p = r.Identity
		case *p < r.Min:
			*p = r.Min
		case *p > r.Max:
			*p = r.Max
		}
	}
	if a.Invert >= 50 {
		a.Invert = 100
	} else {
		a.Invert = 0
	}
	return a
}

// IsIdentity reports whether a leaves an image unchanged.
func (a Adjustments) IsIdentity() bool {
	return a == DefaultAdjustments()
}

// ChannelGain is a per-channel gain in percent (100 = unchanged).
type ChannelGain struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// WithGain returns a copy of a with the channel gain fields replaced.
func (a Adjustments) WithGain(g ChannelGain) Adjustments {
	a.Red, a.Green, a.Blue = g.Red, g.Green, g.Blue
	return a.Clamp()
}
