package imaging

import (
	"image"
	"math"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// ToneKind identifies a global tone operator.
type ToneKind int

// Tone operators in their fixed order of application.
const (
	ToneBrightness ToneKind = iota
	ToneContrast
	ToneSaturate
	ToneHueRotate
	ToneSepia
	ToneBlur
	ToneInvert
)

var toneNames = map[ToneKind]string{
	ToneBrightness: "brightness",
	ToneContrast:   "contrast",
	ToneSaturate:   "saturate",
	ToneHueRotate:  "hue-rotate",
	ToneSepia:      "sepia",
	ToneBlur:       "blur",
	ToneInvert:     "invert",
}

func (k ToneKind) String() string {
	return toneNames[k]
}

// ToneOp is one global tone operator. Amount is a fraction for the
// percentage operators (1 = 100%), degrees for hue-rotate and a pixel radius
// for blur.
type ToneOp struct {
	Kind   ToneKind `json:"-"`
	Name   string   `json:"op"`
	Amount float64  `json:"amount"`
}

// PixelTransfer is the deterministic pixel-transfer description derived from
// an Adjustments vector.
//
// Rendering applies, in this order:
//  1. Kernel, a 3x3 sharpening convolution (alpha is not convolved)
//  2. Gain, a diagonal RGB channel matrix
//  3. Tone, the global tone operators in sequence
//
// A nil Kernel, nil Gain or empty Tone means that stage is the identity and
// is skipped.
type PixelTransfer struct {
	Kernel []float32 `json:"kernel,omitempty"`
	Gain   []float32 `json:"gain,omitempty"`
	Tone   []ToneOp  `json:"tone,omitempty"`
}

// ComposeFilters maps an adjustment vector to its pixel-transfer description.
// The input is expected to be clamped.
func ComposeFilters(a Adjustments) PixelTransfer {
	var pt PixelTransfer

	if a.Sharpen != 0 {
		k := float32(a.Sharpen)
		pt.Kernel = []float32{
			0, -k, 0,
			-k, 1 + 4*k, -k,
			0, -k, 0,
		}
	}

	if a.Red != 100 || a.Green != 100 || a.Blue != 100 {
		pt.Gain = []float32{float32(a.Red / 100), float32(a.Green / 100), float32(a.Blue / 100)}
	}

	add := func(kind ToneKind, amount, identity float64) {
		if amount != identity {
			pt.Tone = append(pt.Tone, ToneOp{Kind: kind, Name: kind.String(), Amount: amount})
		}
	}
	add(ToneBrightness, a.Brightness/100, 1)
	add(ToneContrast, a.Contrast/100, 1)
	add(ToneSaturate, a.Saturation/100, 1)
	add(ToneHueRotate, a.Hue, 0)
	add(ToneSepia, a.Sepia/100, 0)
	add(ToneBlur, a.Blur, 0)
	add(ToneInvert, a.Invert/100, 0)

	return pt
}

// IsIdentity reports whether the transfer leaves every pixel unchanged.
func (pt PixelTransfer) IsIdentity() bool {
	return pt.Kernel == nil && pt.Gain == nil && len(pt.Tone) == 0
}

// Filters returns the gift filter chain for the transfer, in application order.
func (pt PixelTransfer) Filters() []gift.Filter {
	var filters []gift.Filter
	if pt.Kernel != nil {
		filters = append(filters, gift.Convolution(pt.Kernel, false, false, false, 0))
	}
	if pt.Gain != nil {
		gr, gg, gb := pt.Gain[0], pt.Gain[1], pt.Gain[2]
		filters = append(filters, gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
			return clamp01(r * gr), clamp01(g * gg), clamp01(b * gb), a
		}))
	}
	for _, op := range pt.Tone {
		filters = append(filters, op.filter())
	}
	return filters
}

// Apply runs the transfer over img in a single pass and returns a new image.
// The identity transfer returns an exact copy.
func (pt PixelTransfer) Apply(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	if pt.IsIdentity() {
		return src
	}
	g := gift.New(pt.Filters()...)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

func (op ToneOp) filter() gift.Filter {
	switch op.Kind {
	case ToneBlur:
		return gift.GaussianBlur(float32(op.Amount))
	case ToneBrightness:
		v := float32(op.Amount)
		return gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
			return clamp01(r * v), clamp01(g * v), clamp01(b * v), a
		})
	case ToneContrast:
		v := float32(op.Amount)
		return gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
			return clamp01((r-0.5)*v + 0.5), clamp01((g-0.5)*v + 0.5), clamp01((b-0.5)*v + 0.5), a
		})
	case ToneInvert:
		v := float32(op.Amount)
		return gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
			return v + r*(1-2*v), v + g*(1-2*v), v + b*(1-2*v), a
		})
	default:
		return matrixFilter(op.matrix())
	}
}

// matrix returns the 3x3 colour matrix for saturate, hue-rotate and sepia,
// using the Rec. 709 luma weights of the CSS filter effects.
func (op ToneOp) matrix() [9]float64 {
	switch op.Kind {
	case ToneSaturate:
		s := op.Amount
		return [9]float64{
			0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s,
			0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s,
			0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s,
		}
	case ToneHueRotate:
		rad := op.Amount * math.Pi / 180
		c, s := math.Cos(rad), math.Sin(rad)
		return [9]float64{
			0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928,
			0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283,
			0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072,
		}
	case ToneSepia:
		t := 1 - math.Min(math.Max(op.Amount, 0), 1)
		return [9]float64{
			0.393 + 0.607*t, 0.769 - 0.769*t, 0.189 - 0.189*t,
			0.349 - 0.349*t, 0.686 + 0.314*t, 0.168 - 0.168*t,
			0.272 - 0.272*t, 0.534 - 0.534*t, 0.131 + 0.869*t,
		}
	}
	return [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func matrixFilter(m [9]float64) gift.Filter {
	var f [9]float32
	for i, v := range m {
		f[i] = float32(v)
	}
	return gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
		return clamp01(f[0]*r + f[1]*g + f[2]*b),
			clamp01(f[3]*r + f[4]*g + f[5]*b),
			clamp01(f[6]*r + f[7]*g + f[8]*b),
			a
	})
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
