package imaging

import (
	"context"
	"image"
)

// RenderOptions controls the tiled preview.
type RenderOptions struct {
	Tiling   TileConfig
	Viewport Viewport
}

// Frame is the immutable result of one render.
type Frame struct {
	// Image is the rendered canvas.
	Image *image.NRGBA

	// TileWidth and TileHeight are the draw size of a single cell. For a
	// non-tiled render they equal the canvas size.
	TileWidth  int
	TileHeight int

	// SourceWidth and SourceHeight are the dimensions of the decoded source.
	SourceWidth  int
	SourceHeight int

	// Tiling is the arrangement the frame was rendered with.
	Tiling TileConfig

	// Synthesized is true when the tile is the output of Synthesize.
	Synthesized bool

	// Transfer is the pixel transfer applied to the canvas.
	Transfer PixelTransfer
}

// Width returns the canvas width.
func (f *Frame) Width() int { return f.Image.Bounds().Dx() }

// Height returns the canvas height.
func (f *Frame) Height() int { return f.Image.Bounds().Dy() }

// Render runs the full pipeline: decode src, synthesize a seamless tile when
// the seamless repair mode is active, fit and compose the tiles, then apply
// the pixel transfer for adj to the whole canvas in one pass.
//
// A decode failure returns an error wrapping ErrDecodeFailure and no frame.
// If ctx is cancelled while rendering, ctx.Err() is returned and the partial
// result is discarded.
func Render(ctx context.Context, src *Source, adj Adjustments, opts RenderOptions) (*Frame, error) {
	raw, err := src.Decode()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return RenderImage(ctx, raw, adj, opts)
}

// RenderImage is Render for an already decoded raster.
func RenderImage(ctx context.Context, raw image.Image, adj Adjustments, opts RenderOptions) (*Frame, error) {
	sb := raw.Bounds()
	frame := &Frame{
		SourceWidth:  sb.Dx(),
		SourceHeight: sb.Dy(),
		Tiling:       opts.Tiling,
		Transfer:     ComposeFilters(adj.Clamp()),
	}

	var tile image.Image = raw
	if opts.Tiling.Effective() == SeamSeamless {
		tile = Synthesize(raw)
		frame.Synthesized = true
	}

	tb := tile.Bounds()
	frame.TileWidth, frame.TileHeight = FitCell(tb.Dx(), tb.Dy(), opts.Viewport, opts.Tiling.Enabled)

	canvas := ComposeTiles(tile, opts.Tiling, frame.TileWidth, frame.TileHeight)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame.Image = frame.Transfer.Apply(canvas)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frame, nil
}

// CompareView renders the unedited source at the size of a non-tiled frame,
// for side-by-side comparison with the adjusted result.
func CompareView(raw image.Image, f *Frame) *image.NRGBA {
	return scaleTile(raw, f.Width(), f.Height())
}
