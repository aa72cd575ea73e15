package imaging

import (
	"encoding/json"
	"fmt"
)

// SeamRepair selects how tile boundaries are treated in a tiled preview.
// Mirror and Seamless are mutually exclusive by construction.
type SeamRepair int

const (
	// SeamNone repeats the tile unchanged.
	SeamNone SeamRepair = iota
	// SeamMirror flips every other column horizontally and every other row
	// vertically so that neighbouring edges always match.
	SeamMirror
	// SeamSeamless tiles the output of Synthesize.
	SeamSeamless
)

// String returns the wire name of the mode.
func (m SeamRepair) String() string {
	switch m {
	case SeamMirror:
		return "mirror"
	case SeamSeamless:
		return "seamless"
	default:
		return "none"
	}
}

// ParseSeamRepair converts a wire name into a SeamRepair.
// The empty string is treated as "none".
func ParseSeamRepair(s string) (SeamRepair, error) {
	switch s {
	case "", "none":
		return SeamNone, nil
	case "mirror":
		return SeamMirror, nil
	case "seamless":
		return SeamSeamless, nil
	}
	return SeamNone, fmt.Errorf("unknown seam repair mode: %s", s)
}

// MarshalJSON encodes the mode by name.
func (m SeamRepair) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode name.
func (m *SeamRepair) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseSeamRepair(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// TileConfig is the tiling arrangement: a fixed 2x2 grid when Enabled.
type TileConfig struct {
	Enabled bool       `json:"enabled"`
	Repair  SeamRepair `json:"seam_repair"`
}

// Effective returns the repair mode that actually applies.
// With tiling off there is nothing to repair.
func (c TileConfig) Effective() SeamRepair {
	if !c.Enabled {
		return SeamNone
	}
	return c.Repair
}

// TileGrid is the number of cells along each axis of a tiled preview.
const TileGrid = 2
