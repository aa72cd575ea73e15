package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Viewport is the display area a render is fitted into.
// A zero width or height means "native size".
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether the viewport leaves the image at native size.
func (v Viewport) IsZero() bool {
	return v.Width <= 0 || v.Height <= 0
}

// FitTile returns the draw size of a single w x h tile scaled uniformly to
// fit vp. Each dimension is rounded up so that adjacent tiles never leave a
// sub-pixel gap.
func FitTile(w, h int, vp Viewport) (tileW, tileH int) {
	if vp.IsZero() || w <= 0 || h <= 0 {
		return w, h
	}
	scale := math.Min(float64(vp.Width)/float64(w), float64(vp.Height)/float64(h))
	tileW = int(math.Ceil(float64(w) * scale))
	tileH = int(math.Ceil(float64(h) * scale))
	if tileW < 1 {
		tileW = 1
	}
	if tileH < 1 {
		tileH = 1
	}
	return tileW, tileH
}

// FitCell returns the draw size of one grid cell for a w x h tile. Untiled,
// or at native size, this is FitTile. A tiled render into a viewport halves
// the fitted size, rounding up, so the whole 2x2 grid fits the viewport.
func FitCell(w, h int, vp Viewport, tiled bool) (cellW, cellH int) {
	cellW, cellH = FitTile(w, h, vp)
	if tiled && !vp.IsZero() {
		cellW = (cellW + 1) / 2
		cellH = (cellH + 1) / 2
	}
	return cellW, cellH
}

// ComposeTiles draws tile into a new canvas.
//
// With tiling disabled the canvas is the tile scaled to tileW x tileH.
// With tiling enabled the canvas is exactly 2*tileW x 2*tileH and cell
// (x, y) occupies the rectangle starting at (x*tileW, y*tileH). In mirror
// mode odd columns are flipped horizontally and odd rows vertically. Flipped
// cells stay non-premultiplied, so translucent pixels keep their colour.
//
// Cells are pasted at integer offsets with no resampling between them, so
// neighbouring cells share an exact pixel boundary.
func ComposeTiles(tile image.Image, cfg TileConfig, tileW, tileH int) *image.NRGBA {
	scaled := scaleTile(tile, tileW, tileH)
	if !cfg.Enabled {
		return scaled
	}

	variants := [TileGrid][TileGrid]image.Image{
		{scaled, scaled},
		{scaled, scaled},
	}
	if cfg.Effective() == SeamMirror {
		variants[1][0] = imaging.FlipH(scaled)
		variants[0][1] = imaging.FlipV(scaled)
		variants[1][1] = imaging.Rotate180(scaled)
	}

	canvas := imaging.New(TileGrid*tileW, TileGrid*tileH, color.NRGBA{})
	for x := 0; x < TileGrid; x++ {
		for y := 0; y < TileGrid; y++ {
			canvas = imaging.Paste(canvas, variants[x][y], image.Pt(x*tileW, y*tileH))
		}
	}
	return canvas
}

// CellBounds returns the canvas rectangle of cell (x, y) in a tiled canvas.
func CellBounds(x, y, tileW, tileH int) image.Rectangle {
	return image.Rect(x*tileW, y*tileH, (x+1)*tileW, (y+1)*tileH)
}

func scaleTile(tile image.Image, tileW, tileH int) *image.NRGBA {
	b := tile.Bounds()
	if b.Dx() == tileW && b.Dy() == tileH {
		return imaging.Clone(tile)
	}
	return imaging.Resize(tile, tileW, tileH, imaging.Lanczos)
}
