package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// SeamlessOverlap is the fraction of each dimension consumed by the edge
// cross-fade.
const SeamlessOverlap = 0.15

// SeamlessSize returns the overlap along each axis and the resulting
// dimensions of Synthesize for a w x h source. The overlap never exceeds
// w-1 (h-1), so the result is at least 1x1.
func SeamlessSize(w, h int) (overlapX, overlapY, newW, newH int) {
	overlapX = clampOverlap(int(float64(w)*SeamlessOverlap), w)
	overlapY = clampOverlap(int(float64(h)*SeamlessOverlap), h)
	return overlapX, overlapY, w - overlapX, h - overlapY
}

func clampOverlap(overlap, size int) int {
	if overlap > size-1 {
		overlap = size - 1
	}
	if overlap < 0 {
		overlap = 0
	}
	return overlap
}

// Synthesize produces a tileable version of src by cross-fading each edge
// with its opposite edge.
//
// # Algorithm
//
// Horizontal pass: the rightmost overlapX columns of src are laid over the
// left of a (W-overlapX) x H canvas. Their opacity ramps linearly from fully
// kept at local x=0 to fully erased at x=overlapX, and the whole of src is
// composited underneath. The left edge of the result therefore continues the
// source's right edge and fades into the source's own content.
//
// Vertical pass: the same cross-fade on the transposed intermediate, using
// its bottom overlapY rows.
//
// The result is a new (W-overlapX) x (H-overlapY) image; src is not
// modified. Synthesis is deterministic.
func Synthesize(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)
	b := img.Bounds()
	overlapX, overlapY, _, _ := SeamlessSize(b.Dx(), b.Dy())

	horizontal := crossFadeLeft(img, overlapX)
	vertical := crossFadeLeft(imaging.Transpose(horizontal), overlapY)
	return imaging.Transpose(vertical)
}

// crossFadeLeft performs one horizontal pass of Synthesize on a zero-origin
// image, returning a canvas overlap columns narrower than src.
func crossFadeLeft(src *image.NRGBA, overlap int) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	newW := w - overlap
	dst := image.NewNRGBA(image.Rect(0, 0, newW, h))

	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+newW*4]
		copy(dstRow, srcRow[:newW*4])

		for x := 0; x < overlap; x++ {
			keep := 1 - float64(x)/float64(overlap)
			strip := srcRow[(w-overlap+x)*4 : (w-overlap+x)*4+4]
			over(dstRow[x*4:x*4+4], strip, keep)
		}
	}
	return dst
}

// over composites the straight-alpha pixel fg, scaled by opacity, on top of
// the straight-alpha pixel dst in place.
func over(dst, fg []uint8, opacity float64) {
	fa := float64(fg[3]) / 255 * opacity
	ba := float64(dst[3]) / 255
	outA := fa + ba*(1-fa)
	if outA <= 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}
	for i := 0; i < 3; i++ {
		c := (float64(fg[i])*fa + float64(dst[i])*ba*(1-fa)) / outA
		dst[i] = roundUint8(c)
	}
	dst[3] = roundUint8(outA * 255)
}

func roundUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
