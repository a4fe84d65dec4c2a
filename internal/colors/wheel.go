// SPDX-License-Identifier: MIT
package colors

import "math"

// Wheel is a circular control of the given pixel size. Inset keeps the
// cursor inside the painted ring.
type Wheel struct {
	Size  float64
	Inset float64
}

// DefaultWheel matches the admin picker markup
var DefaultWheel = Wheel{Size: 240, Inset: 10}

// Pick maps a pointer position, relative to the wheel's top-left corner, to
// hue and saturation. Hue 0 is straight up; distance beyond the usable radius
// is clamped to full saturation.
func (w Wheel) Pick(x, y float64) (h, s float64) {
	center := w.Size / 2
	dx := x - center
	dy := y - center

	h = math.Atan2(dy, dx)*180/math.Pi + 90
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}

	maxRadius := center - w.Inset
	if maxRadius <= 0 {
		return h, 0
	}
	radius := math.Min(math.Hypot(dx, dy), maxRadius)
	return h, radius / maxRadius * 100
}

// PickState moves the wheel coordinates of s to the pointer position,
// keeping both sliders
func (w Wheel) PickState(s State, x, y float64) State {
	s.H, s.S = w.Pick(x, y)
	return s
}

// CursorOffset converts hue and saturation into the cursor position as a
// percentage of the wheel box, with 50,50 at the center
func CursorOffset(h, s float64) (left, top float64) {
	angle := (h - 90) * math.Pi / 180
	r := clamp(s, 0, 100) / 100
	return 50 + math.Cos(angle)*r*50, 50 + math.Sin(angle)*r*50
}

// SliderValue maps a pointer x within a horizontal slider of the given width
// to a 0..100 value
func SliderValue(x, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return clamp(x, 0, width) / width * 100
}
