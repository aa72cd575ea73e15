package imaging

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDefaultAdjustments(t *testing.T) {
	a := DefaultAdjustments()

	for _, r := range AdjustmentRanges {
		v, err := a.Get(r.Name)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", r.Name, err)
		}
		if v != r.Identity {
			t.Errorf("%s: got %v, want identity %v", r.Name, v, r.Identity)
		}
	}
	if !a.IsIdentity() {
		t.Error("DefaultAdjustments should be the identity")
	}
}

func TestAdjustmentRanges_IdentityInRange(t *testing.T) {
	if len(AdjustmentRanges) != 11 {
		t.Errorf("expected 11 adjustment fields, got %d", len(AdjustmentRanges))
	}
	for _, r := range AdjustmentRanges {
		if r.Identity < r.Min || r.Identity > r.Max {
			t.Errorf("%s: identity %v outside [%v, %v]", r.Name, r.Identity, r.Min, r.Max)
		}
	}
}

func TestAdjustments_Set(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value float64
		want  float64
	}{
		{"in range", "brightness", 150, 150},
		{"above max", "brightness", 500, 200},
		{"below min", "contrast", -10, 0},
		{"hue negative", "hue", -90, -90},
		{"hue wraps no further than range", "hue", 400, 180},
		{"blur above max", "blur", 25, 20},
		{"sharpen fractional", "sharpen", 2.5, 2.5},
		{"invert snaps up", "invert", 60, 100},
		{"invert snaps down", "invert", 49, 0},
		{"channel gain", "red", 120, 120},
		{"NaN resets to identity", "green", math.NaN(), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := DefaultAdjustments().Set(tt.field, tt.value)
			if err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, _ := a.Get(tt.field)
			if got != tt.want {
				t.Errorf("%s: got %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestAdjustments_SetLeavesReceiver(t *testing.T) {
	a := DefaultAdjustments()
	b, err := a.Set("sepia", 50)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if a.Sepia != 0 {
		t.Error("Set should not modify the receiver")
	}
	if b.Sepia != 50 {
		t.Errorf("Sepia: got %v, want 50", b.Sepia)
	}
}

func TestAdjustments_UnknownField(t *testing.T) {
	a := DefaultAdjustments()
	if _, err := a.Set("gamma", 1); err == nil {
		t.Error("Set should fail for an unknown field")
	}
	if _, err := a.Get("gamma"); err == nil {
		t.Error("Get should fail for an unknown field")
	}
}

func TestAdjustments_Clamp(t *testing.T) {
	a := Adjustments{
		Brightness: 300,
		Contrast:   -1,
		Saturation: math.NaN(),
		Hue:        -200,
		Sepia:      101,
		Blur:       -5,
		Sharpen:    11,
		Invert:     75,
		Red:        0,
		Green:      200,
		Blue:       201,
	}
	want := Adjustments{
		Brightness: 200,
		Contrast:   0,
		Saturation: 100,
		Hue:        -180,
		Sepia:      100,
		Blur:       0,
		Sharpen:    10,
		Invert:     100,
		Red:        0,
		Green:      200,
		Blue:       200,
	}
	if got := a.Clamp(); got != want {
		t.Errorf("Clamp:\n got %+v\nwant %+v", got, want)
	}
}

func TestAdjustments_WithGain(t *testing.T) {
	a := DefaultAdjustments()
	a.Brightness = 120

	got := a.WithGain(ChannelGain{Red: 100, Green: 250, Blue: 80})
	if got.Red != 100 || got.Green != 200 || got.Blue != 80 {
		t.Errorf("gain: got (%v,%v,%v), want (100,200,80)", got.Red, got.Green, got.Blue)
	}
	if got.Brightness != 120 {
		t.Error("WithGain should leave other fields unchanged")
	}
}

func TestAdjustments_JSON(t *testing.T) {
	data, err := json.Marshal(DefaultAdjustments())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]float64
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, r := range AdjustmentRanges {
		if v, ok := fields[r.Name]; !ok || v != r.Identity {
			t.Errorf("%s: got %v (present=%v), want %v", r.Name, v, ok, r.Identity)
		}
	}
}
