// SPDX-License-Identifier: MIT
package colors

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned for strings that are not 3, 4, 6 or 8 hex digits
var ErrInvalidHex = errors.New("invalid hex color")

// RGBA is a decoded color with 8-bit channels and a 0..1 alpha
type RGBA struct {
	R, G, B uint8
	A       float64
}

// ParseHex decodes #RGB, #RGBA, #RRGGBB and #RRGGBBAA, case-insensitively.
// The leading '#' is optional. Short forms double each nibble.
func ParseHex(hex string) (RGBA, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(digits) {
	case 3, 4:
		var long strings.Builder
		for _, c := range digits {
			long.WriteRune(c)
			long.WriteRune(c)
		}
		digits = long.String()
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	c := RGBA{A: 1}
	if len(digits) == 8 {
		c.A = float64(value&0xFF) / 255
		value >>= 8
	}
	c.R = uint8(value >> 16)
	c.G = uint8(value >> 8)
	c.B = uint8(value)
	return c, nil
}

// IsStoredHex reports whether hex is a #RRGGBB or #RRGGBBAA string, the
// only forms written into settings
func IsStoredHex(hex string) bool {
	if !strings.HasPrefix(hex, "#") || (len(hex) != 7 && len(hex) != 9) {
		return false
	}
	_, err := strconv.ParseUint(hex[1:], 16, 32)
	return err == nil
}

// Hex formats c as uppercase #RRGGBB, appending an alpha byte when A < 1
func (c RGBA) Hex() string {
	hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	if c.A < 1 {
		hex += fmt.Sprintf("%02X", alphaByte(c.A))
	}
	return hex
}

// Triple formats the color channels as "R G B" for CSS variables that are
// composed with an alpha downstream
func (c RGBA) Triple() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// Normalize parses any accepted hex form and re-encodes it in the stored form
func Normalize(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
