// Package session holds the state of one texture-editing session: the loaded
// source, the adjustment vector, the tiling arrangement and the most recent
// render.
//
// Renders are cancelled by superseding. Each state change bumps a generation
// counter; a render that finishes after a newer change was made is discarded
// instead of committed.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/ironsheep/texture-lab-mcp/internal/imaging"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// ErrSuperseded is returned by Render when the state changed while the
// render was in flight. The result was discarded.
var ErrSuperseded = errors.New("render superseded")

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	source      *imaging.Source
	info        *imaging.ImageInfo
	adjustments imaging.Adjustments
	tiling      imaging.TileConfig
	viewport    imaging.Viewport

	generation uint64
	frame      *imaging.Frame

	// now is the clock used for export filenames.
	now func() time.Time
}

// New returns an empty session awaiting an image.
func New() *Session {
	return &Session{
		adjustments: imaging.DefaultAdjustments(),
		now:         time.Now,
	}
}

// State is a snapshot of the session for display.
type State struct {
	Loaded      bool                `json:"loaded"`
	Image       *imaging.ImageInfo  `json:"image,omitempty"`
	Adjustments imaging.Adjustments `json:"adjustments"`
	Tiling      imaging.TileConfig  `json:"tiling"`
	Viewport    imaging.Viewport    `json:"viewport"`
	Rendered    bool                `json:"rendered"`
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Loaded:      s.source != nil,
		Image:       s.info,
		Adjustments: s.adjustments,
		Tiling:      s.tiling,
		Viewport:    s.viewport,
		Rendered:    s.frame != nil,
	}
}

// Load replaces the session's image. Adjustments and tiling return to their
// defaults, as for a fresh upload. On a decode failure the session is left
// with no image.
func (s *Session) Load(src *imaging.Source) (*imaging.ImageInfo, error) {
	info, err := imaging.LoadImageInfo(src)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.adjustments = imaging.DefaultAdjustments()
	s.tiling = imaging.TileConfig{}
	if err != nil {
		s.source, s.info = nil, nil
		return nil, err
	}
	s.source, s.info = src, info
	return info, nil
}

// Unload discards the current image and all derived state.
func (s *Session) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unloadLocked()
}

func (s *Session) unloadLocked() {
	s.bump()
	s.source, s.info = nil, nil
}

// bump invalidates in-flight renders and the committed frame.
// Callers hold s.mu.
func (s *Session) bump() {
	s.generation++
	s.frame = nil
}

// Adjustments returns the current adjustment vector.
func (s *Session) Adjustments() imaging.Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustments
}

// SetAdjustments replaces the adjustment vector. Values are clamped.
func (s *Session) SetAdjustments(a imaging.Adjustments) imaging.Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.adjustments = a.Clamp()
	return s.adjustments
}

// UpdateAdjustments applies fn to the current vector and stores the clamped
// result in one step, so concurrent partial updates never lose each other.
func (s *Session) UpdateAdjustments(fn func(imaging.Adjustments) imaging.Adjustments) imaging.Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.adjustments = fn(s.adjustments).Clamp()
	return s.adjustments
}

// Adjust sets a single named field. The value is clamped to its range.
func (s *Session) Adjust(name string, value float64) (imaging.Adjustments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.adjustments.Set(name, value)
	if err != nil {
		return s.adjustments, err
	}
	s.bump()
	s.adjustments = a
	return a, nil
}

// Reset restores the default adjustments.
func (s *Session) Reset() imaging.Adjustments {
	return s.SetAdjustments(imaging.DefaultAdjustments())
}

// SetTiling turns the 2x2 preview on or off and selects the seam repair
// mode. Selecting one repair mode replaces any other.
func (s *Session) SetTiling(cfg imaging.TileConfig) imaging.TileConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.tiling = cfg
	return cfg
}

// SetViewport sets the display area renders are fitted into.
func (s *Session) SetViewport(vp imaging.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vp == s.viewport {
		return
	}
	s.bump()
	s.viewport = vp
}

// snapshot captures everything a render needs.
type snapshot struct {
	source     *imaging.Source
	adj        imaging.Adjustments
	opts       imaging.RenderOptions
	generation uint64
}

func (s *Session) snapshot() (snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return snapshot{}, ErrNoImage
	}
	return snapshot{
		source:     s.source,
		adj:        s.adjustments,
		opts:       imaging.RenderOptions{Tiling: s.tiling, Viewport: s.viewport},
		generation: s.generation,
	}, nil
}

// Render renders the current state and commits the frame.
//
// The pixel work runs without holding the session lock. If the state changed
// meanwhile, the frame is discarded and ErrSuperseded is returned. A decode
// failure unloads the image and returns an error wrapping
// imaging.ErrDecodeFailure.
func (s *Session) Render(ctx context.Context) (*imaging.Frame, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	frame, err := imaging.Render(ctx, snap.source, snap.adj, snap.opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, imaging.ErrDecodeFailure) && s.generation == snap.generation {
			s.unloadLocked()
		}
		return nil, err
	}
	if s.generation != snap.generation {
		return nil, ErrSuperseded
	}
	s.frame = frame
	return frame, nil
}

// Frame returns the last committed render, rendering first if there is none.
func (s *Session) Frame(ctx context.Context) (*imaging.Frame, error) {
	s.mu.Lock()
	f := s.frame
	s.mu.Unlock()
	if f != nil {
		return f, nil
	}
	return s.Render(ctx)
}

// Original decodes the unedited source.
func (s *Session) Original() (image.Image, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	img, err := snap.source.Decode()
	if err != nil {
		s.mu.Lock()
		if s.generation == snap.generation {
			s.unloadLocked()
		}
		s.mu.Unlock()
		return nil, err
	}
	return img, nil
}

// PickResult is an emitted colour sample and the white balance derived
// from it.
type PickResult struct {
	Color       *imaging.ColorResult `json:"color"`
	Gain        imaging.ChannelGain  `json:"gain"`
	Adjustments imaging.Adjustments  `json:"adjustments"`
}

// Pick samples the source at display coordinate (x, y) of the current render
// and applies the white balance derived from the sample to the channel gains.
//
// A coordinate outside the image emits no sample: Pick returns (nil, nil)
// and the adjustments are unchanged.
func (s *Session) Pick(ctx context.Context, x, y float64) (*PickResult, error) {
	frame, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.Original()
	if err != nil {
		return nil, err
	}

	sample, err := imaging.SampleDisplay(raw, x, y, frame.Width(), frame.Height())
	if errors.Is(err, imaging.ErrOutOfBounds) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	gain := imaging.WhiteBalance(sample.RGB)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.adjustments = s.adjustments.WithGain(gain)
	return &PickResult{Color: sample, Gain: gain, Adjustments: s.adjustments}, nil
}

// Export encodes the current render for download.
func (s *Session) Export(ctx context.Context, format imaging.ExportFormat) (*imaging.ExportResult, []byte, error) {
	frame, err := s.Frame(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, data, err := imaging.Export(frame.Image, format, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("export failed: %w", err)
	}
	return res, data, nil
}
