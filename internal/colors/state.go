// SPDX-License-Identifier: MIT

// Package colors implements the color picker model: a hue/saturation wheel
// plus a lightness slider and an opacity slider, and the conversions between
// that model and hex strings.
package colors

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// State is the picker position. H is in [0,360), S and V in [0,100], A in [0,1].
// V is the lightness slider: 0 is black, 50 is the wheel color, 100 is white.
type State struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
	A float64 `json:"a"`
}

// NewState returns the picker's initial position, fully saturated red
func NewState() State {
	return State{H: 0, S: 100, V: 50, A: 1}
}

// FromHex loads a stored color into the picker. Only hue and saturation are
// recovered: lightness is reset to 50 and opacity to 1 so the wheel shows the
// pure color. Reloading a darkened or translucent color therefore does not
// reproduce its former appearance.
func FromHex(hex string) (State, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return State{}, err
	}
	h, s, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	return State{H: h, S: s * 100, V: 50, A: 1}, nil
}

// Clamped returns s with every field inside its range
func (s State) Clamped() State {
	h := math.Mod(s.H, 360)
	if h < 0 {
		h += 360
	}
	return State{
		H: h,
		S: clamp(s.S, 0, 100),
		V: clamp(s.V, 0, 100),
		A: clamp(s.A, 0, 1),
	}
}

// wheel returns the pure wheel color: HSV with value pinned to 1
func (s State) wheel() colorful.Color {
	c := s.Clamped()
	return colorful.Hsv(c.H, c.S/100, 1)
}

// WheelRGB is the color under the wheel cursor, ignoring both sliders
func (s State) WheelRGB() RGBA {
	w := s.wheel()
	return RGBA{R: channel(w.R), G: channel(w.G), B: channel(w.B), A: 1}
}

// RGB is the final color after the lightness slider, without opacity.
// Below 50 the wheel color is blended toward black, above 50 toward white.
func (s State) RGB() RGBA {
	w := s.wheel()
	l := s.Clamped().V / 100

	r, g, b := w.R, w.G, w.B
	if l <= 0.5 {
		ratio := l / 0.5
		r, g, b = r*ratio, g*ratio, b*ratio
	} else {
		ratio := (l - 0.5) / 0.5
		r = r + (1-r)*ratio
		g = g + (1-g)*ratio
		b = b + (1-b)*ratio
	}
	return RGBA{R: channel(r), G: channel(g), B: channel(b), A: 1}
}

// RGBA is the final color including opacity
func (s State) RGBA() RGBA {
	c := s.RGB()
	c.A = s.Clamped().A
	return c
}

// Hex encodes the final color: 7 characters when opaque, 9 otherwise
func (s State) Hex() string {
	return s.RGBA().Hex()
}

// WithLightness moves the lightness slider
func (s State) WithLightness(v float64) State {
	s.V = clamp(v, 0, 100)
	return s
}

// WithOpacity moves the opacity slider, given as a percentage
func (s State) WithOpacity(percent float64) State {
	s.A = clamp(percent, 0, 100) / 100
	return s
}

// Preview is everything a picker view needs to draw the current state
type Preview struct {
	Hex               string  `json:"hex"`
	WheelHex          string  `json:"wheelHex"`
	OpaqueHex         string  `json:"opaqueHex"`
	CursorLeft        float64 `json:"cursorLeft"` // percent of the wheel width
	CursorTop         float64 `json:"cursorTop"`
	Lightness         int     `json:"lightness"`
	Opacity           int     `json:"opacity"`
	LightnessGradient string  `json:"lightnessGradient"`
	OpacityGradient   string  `json:"opacityGradient"`
}

// Preview projects the state onto the picker controls
func (s State) Preview() Preview {
	c := s.Clamped()
	wheelHex := s.WheelRGB().Hex()
	opaqueHex := s.RGB().Hex()
	left, top := CursorOffset(c.H, c.S)
	return Preview{
		Hex:               s.Hex(),
		WheelHex:          wheelHex,
		OpaqueHex:         opaqueHex,
		CursorLeft:        left,
		CursorTop:         top,
		Lightness:         int(math.Round(c.V)),
		Opacity:           int(math.Round(c.A * 100)),
		LightnessGradient: fmt.Sprintf("linear-gradient(to right, black, %s, white)", wheelHex),
		OpacityGradient:   fmt.Sprintf("linear-gradient(to right, transparent, %s)", opaqueHex),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}
