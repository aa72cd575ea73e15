package imaging

import (
	"image"
	"math"
)

// seamDiffThreshold is the mean per-channel difference above which a pixel
// pair straddling a seam counts as discontinuous.
const seamDiffThreshold = 10

// SeamStat measures the colour step across one seam line.
type SeamStat struct {
	// Axis is "vertical" for a seam between two columns and "horizontal"
	// for a seam between two rows.
	Axis string `json:"axis"`

	// Position is the column (row) on the far side of the seam. A position
	// of 0 is the wrap-around seam between the last and first column (row).
	Position int `json:"position"`

	// AverageColorDiff is the mean per-channel difference across the seam.
	AverageColorDiff float64 `json:"average_color_diff"`

	// MaxColorDiff is the largest per-pixel mean channel difference.
	MaxColorDiff float64 `json:"max_color_diff"`

	// PixelsDifferent counts pixel pairs above the discontinuity threshold.
	PixelsDifferent int `json:"pixels_different"`

	// Ratio is AverageColorDiff divided by the image's interior average
	// (floored at one level). Values near 1 mean the seam is no more visible
	// than ordinary detail.
	Ratio float64 `json:"ratio"`
}

// SeamReport contains the seam measurements of a rendered canvas.
type SeamReport struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// InteriorAverage is the mean colour difference between all adjacent
	// column and row pairs, the baseline a seam is compared against.
	InteriorAverage float64 `json:"interior_average"`

	Seams []SeamStat `json:"seams"`

	// WorstRatio is the largest Ratio across all seams.
	WorstRatio float64 `json:"worst_ratio"`
}

// MeasureSeams measures the colour discontinuity along every tile boundary of
// img, including the wrap-around boundaries the image would show if it were
// itself repeated. tileW and tileH give the cell size; pass the image size
// for an untiled canvas.
func MeasureSeams(img image.Image, tileW, tileH int) *SeamReport {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	report := &SeamReport{Width: w, Height: h}
	if w < 2 || h < 2 || tileW <= 0 || tileH <= 0 {
		return report
	}

	report.InteriorAverage = interiorAverage(img)

	for x := 0; x < w; x += tileW {
		report.Seams = append(report.Seams, measureSeam(img, "vertical", x, report.InteriorAverage))
	}
	for y := 0; y < h; y += tileH {
		report.Seams = append(report.Seams, measureSeam(img, "horizontal", y, report.InteriorAverage))
	}
	for _, s := range report.Seams {
		if s.Ratio > report.WorstRatio {
			report.WorstRatio = s.Ratio
		}
	}
	return report
}

// measureSeam compares the line before pos (wrapping at 0) with line pos.
func measureSeam(img image.Image, axis string, pos int, interior float64) SeamStat {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stat := SeamStat{Axis: axis, Position: pos}

	var n int
	var total float64
	if axis == "vertical" {
		prev := (pos - 1 + w) % w
		for y := 0; y < h; y++ {
			d := pixelDiff(img, b.Min.X+prev, b.Min.Y+y, b.Min.X+pos, b.Min.Y+y)
			stat.add(d)
			total += d
			n++
		}
	} else {
		prev := (pos - 1 + h) % h
		for x := 0; x < w; x++ {
			d := pixelDiff(img, b.Min.X+x, b.Min.Y+prev, b.Min.X+x, b.Min.Y+pos)
			stat.add(d)
			total += d
			n++
		}
	}

	avg := total / float64(n)
	stat.AverageColorDiff = math.Round(avg*100) / 100
	stat.MaxColorDiff = math.Round(stat.MaxColorDiff*100) / 100
	stat.Ratio = math.Round(avg/math.Max(interior, 1)*100) / 100
	return stat
}

func (s *SeamStat) add(d float64) {
	if d > s.MaxColorDiff {
		s.MaxColorDiff = d
	}
	if d > seamDiffThreshold {
		s.PixelsDifferent++
	}
}

// interiorAverage is the mean difference between horizontally and vertically
// adjacent pixels, excluding wrap-around pairs.
func interiorAverage(img image.Image) float64 {
	b := img.Bounds()
	var total float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if x+1 < b.Max.X {
				total += pixelDiff(img, x, y, x+1, y)
				n++
			}
			if y+1 < b.Max.Y {
				total += pixelDiff(img, x, y, x, y+1)
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// pixelDiff returns the mean absolute 8-bit channel difference of two pixels.
func pixelDiff(img image.Image, x1, y1, x2, y2 int) float64 {
	r1c, g1c, b1c, _ := img.At(x1, y1).RGBA()
	r2c, g2c, b2c, _ := img.At(x2, y2).RGBA()

	dr := absDiff(uint8(r1c>>8), uint8(r2c>>8))
	dg := absDiff(uint8(g1c>>8), uint8(g2c>>8))
	db := absDiff(uint8(b1c>>8), uint8(b2c>>8))
	return float64(dr+dg+db) / 3.0
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
