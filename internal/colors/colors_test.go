// SPDX-License-Identifier: MIT
package colors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStateIsRed(t *testing.T) {
	assert.Equal(t, "#FF0000", NewState().Hex())
}

func TestLightnessEndpoints(t *testing.T) {
	for _, h := range []float64{0, 45, 120, 200, 359} {
		for _, s := range []float64{0, 30, 100} {
			st := State{H: h, S: s, V: 0, A: 1}
			assert.Equal(t, "#000000", st.Hex(), "h=%v s=%v v=0", h, s)
			st.V = 100
			assert.Equal(t, "#FFFFFF", st.Hex(), "h=%v s=%v v=100", h, s)
		}
	}
}

func TestLightnessMidpointIsWheelColor(t *testing.T) {
	st := State{H: 210, S: 60, V: 50, A: 1}
	assert.Equal(t, st.WheelRGB(), st.RGB())
}

func TestLightnessBlend(t *testing.T) {
	dark := State{H: 0, S: 100, V: 25, A: 1}
	assert.Equal(t, "#800000", dark.Hex())

	light := State{H: 0, S: 100, V: 75, A: 1}
	assert.Equal(t, "#FF8080", light.Hex())
}

func TestHexLength(t *testing.T) {
	st := NewState()
	assert.Len(t, st.Hex(), 7)

	st.A = 0.5
	assert.Equal(t, "#FF000080", st.Hex())

	st.A = 0
	assert.Equal(t, "#FF000000", st.Hex())
}

func TestHueWrapsAt360(t *testing.T) {
	a := State{H: 0, S: 100, V: 50, A: 1}
	b := State{H: 360, S: 100, V: 50, A: 1}
	assert.Equal(t, a.Hex(), b.Hex())
}

func TestFromHexForcesLightnessAndOpacity(t *testing.T) {
	st, err := FromHex("#00FF0080")
	require.NoError(t, err)
	assert.InDelta(t, 120, st.H, 0.001)
	assert.InDelta(t, 100, st.S, 0.001)
	assert.Equal(t, 50.0, st.V)
	assert.Equal(t, 1.0, st.A)
	assert.Equal(t, "#00FF00", st.Hex())
}

func TestFromHexRoundTripFullValueColors(t *testing.T) {
	for _, hex := range []string{"#FF0000", "#00FF00", "#0000FF", "#FF00FF", "#F45D7E", "#38BDF8"} {
		c, err := ParseHex(hex)
		require.NoError(t, err)
		if max(c.R, c.G, c.B) != 255 {
			continue
		}
		st, err := FromHex(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, st.Hex())
	}
}

func TestWheelSweep(t *testing.T) {
	mismatches := 0
	for hs := 0; hs < 720; hs++ {
		for ss := 0; ss <= 200; ss++ {
			h, s := float64(hs)/2, float64(ss)/2
			st := State{H: h, S: s, V: 50, A: 1}

			if st.RGB() != st.WheelRGB() {
				mismatches++
				if mismatches <= 5 {
					t.Errorf("h=%v s=%v: lightness 50 gives %v, wheel is %v", h, s, st.RGB(), st.WheelRGB())
				}
			}

			hex := st.Hex()
			back, err := FromHex(hex)
			require.NoError(t, err)
			if got := back.Hex(); got != hex {
				mismatches++
				if mismatches <= 5 {
					t.Errorf("h=%v s=%v: %s reloads as %s", h, s, hex, got)
				}
			}
		}
	}
	assert.Zero(t, mismatches)
}

func TestFromHexDarkColorLosesLightness(t *testing.T) {
	st, err := FromHex("#292524")
	require.NoError(t, err)
	assert.NotEqual(t, "#292524", st.Hex())
}

func TestParseHexForms(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#f00", RGBA{255, 0, 0, 1}},
		{"F00", RGBA{255, 0, 0, 1}},
		{"#ff000080", RGBA{255, 0, 0, 128.0 / 255}},
		{"#FfEeF1", RGBA{255, 238, 241, 1}},
		{"#0f08", RGBA{0, 255, 0, 136.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want.R, got.R)
			assert.Equal(t, tt.want.G, got.G)
			assert.Equal(t, tt.want.B, got.B)
			assert.InDelta(t, tt.want.A, got.A, 0.0001)
		})
	}
}

func TestParseHexAlphaThenOpaque(t *testing.T) {
	c, err := ParseHex("#80FF0080")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.A, 1.0/255)
	assert.Equal(t, "#80FF0080", c.Hex())

	c.A = 1
	assert.Equal(t, "#80FF00", c.Hex())
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#GGGGGG", "#1234567", "red"} {
		_, err := ParseHex(in)
		assert.ErrorIs(t, err, ErrInvalidHex, in)
	}
}

func TestTriple(t *testing.T) {
	c, err := ParseHex("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "255 0 0", c.Triple())
}

func TestIsStoredHex(t *testing.T) {
	assert.True(t, IsStoredHex("#F45D7E"))
	assert.True(t, IsStoredHex("#f45d7e80"))
	assert.False(t, IsStoredHex("#f45"))
	assert.False(t, IsStoredHex("f45d7e"))
	assert.False(t, IsStoredHex("#f45d7g"))
}

func TestSliders(t *testing.T) {
	st := NewState().WithLightness(150).WithOpacity(40)
	assert.Equal(t, 100.0, st.V)
	assert.InDelta(t, 0.4, st.A, 1e-9)

	assert.Equal(t, 0.0, SliderValue(-5, 200))
	assert.Equal(t, 50.0, SliderValue(100, 200))
	assert.Equal(t, 100.0, SliderValue(400, 200))
	assert.Equal(t, 0.0, SliderValue(10, 0))
}

func TestWheelPick(t *testing.T) {
	w := Wheel{Size: 240, Inset: 10}

	h, s := w.Pick(120, 10)
	assert.InDelta(t, 0, h, 1e-9)
	assert.InDelta(t, 100, s, 1e-9)

	h, s = w.Pick(230, 120)
	assert.InDelta(t, 90, h, 1e-9)
	assert.InDelta(t, 100, s, 1e-9)

	h, s = w.Pick(120, 175)
	assert.InDelta(t, 180, h, 1e-9)
	assert.InDelta(t, 50, s, 1e-9)

	h, _ = w.Pick(10, 120)
	assert.InDelta(t, 270, h, 1e-9)
}

func TestWheelPickClampsOutsideRing(t *testing.T) {
	w := DefaultWheel
	_, s := w.Pick(-500, 120)
	assert.Equal(t, 100.0, s)
}

func TestWheelPickRange(t *testing.T) {
	w := DefaultWheel
	for x := -20.0; x <= 260; x += 13 {
		for y := -20.0; y <= 260; y += 17 {
			h, s := w.Pick(x, y)
			assert.GreaterOrEqual(t, h, 0.0)
			assert.Less(t, h, 360.0)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}
	}
}

func TestCursorOffset(t *testing.T) {
	left, top := CursorOffset(0, 100)
	assert.InDelta(t, 50, left, 1e-9)
	assert.InDelta(t, 0, top, 1e-9)

	left, top = CursorOffset(90, 50)
	assert.InDelta(t, 75, left, 1e-9)
	assert.InDelta(t, 50, top, 1e-9)

	left, top = CursorOffset(123, 0)
	assert.InDelta(t, 50, left, 1e-9)
	assert.InDelta(t, 50, top, 1e-9)
}

func TestPickThenCursorAgree(t *testing.T) {
	w := Wheel{Size: 200, Inset: 0}
	st := w.PickState(NewState(), 150, 100)
	left, top := CursorOffset(st.H, st.S)
	assert.InDelta(t, 75, left, 1e-9)
	assert.InDelta(t, 50, top, 1e-9)
}

func TestPreview(t *testing.T) {
	p := State{H: 0, S: 100, V: 25, A: 0.5}.Preview()
	assert.Equal(t, "#80000080", p.Hex)
	assert.Equal(t, "#FF0000", p.WheelHex)
	assert.Equal(t, "#800000", p.OpaqueHex)
	assert.Equal(t, 25, p.Lightness)
	assert.Equal(t, 50, p.Opacity)
	assert.Contains(t, p.LightnessGradient, "#FF0000")
	assert.Contains(t, p.OpacityGradient, "#800000")
}

func TestPushHistory(t *testing.T) {
	h, added := PushHistory(nil, "#FF0000")
	assert.True(t, added)
	assert.Equal(t, []string{"#FF0000"}, h)

	h, added = PushHistory(h, "#00FF00")
	assert.True(t, added)
	assert.Equal(t, []string{"#00FF00", "#FF0000"}, h)

	h, added = PushHistory(h, "#FF0000")
	assert.False(t, added)
	assert.Equal(t, []string{"#00FF00", "#FF0000"}, h)
}

func TestPushHistoryCapsSize(t *testing.T) {
	var h []string
	for i := 0; i < 40; i++ {
		h, _ = PushHistory(h, fmt.Sprintf("#%06X", i))
		assert.LessOrEqual(t, len(h), HistorySize)
	}
	assert.Len(t, h, HistorySize)
	assert.Equal(t, "#000027", h[0])
}

func TestDefaultHistory(t *testing.T) {
	d := DefaultHistory()
	assert.Len(t, d, 13)
	assert.Equal(t, "#f45d7e", d[0])
	d[0] = "changed"
	assert.Equal(t, "#f45d7e", DefaultHistory()[0])
}
