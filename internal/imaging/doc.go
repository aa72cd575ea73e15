// Package imaging implements the raster pipeline of the texture editor.
//
// The pipeline takes an encoded source image, an Adjustments vector and a
// tiling arrangement and produces a new rendered raster:
//
//	Source --decode--> raster --Synthesize (seamless only)--> tile
//	tile --FitCell/ComposeTiles--> canvas --PixelTransfer.Apply--> Frame
//
// Every step allocates a fresh image; no input raster is modified. Render is
// a pure function of its inputs apart from the context it checks for
// cancellation.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Rasters produced by this
// package always have a zero origin.
//
// # Seam Repair
//
// A tiled preview is a fixed 2x2 grid of one tile. SeamMirror flips odd
// columns and rows so every shared edge matches its neighbour; SeamSeamless
// replaces the tile with the output of Synthesize, which cross-fades each
// edge into its opposite edge at the cost of 15% of each dimension.
//
// # Color Representation
//
// Pixel math runs on straight (non-premultiplied) alpha. Sampled colours are
// reported as hex "#rrggbb", 8-bit RGB and RGBA, and HSL.
//
// # Error Handling
//
// Two error kinds are defined:
//   - ErrDecodeFailure: the source bytes are not a valid image
//   - ErrOutOfBounds: a colour-pick coordinate maps outside the source
//
// Both are wrapped with context; test for them with errors.Is.
package imaging
