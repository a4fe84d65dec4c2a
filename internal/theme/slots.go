// SPDX-License-Identifier: MIT
package theme

import "github.com/janayne/salon/internal/models"

// Slot is one configurable site color
type Slot struct {
	Setting  string // settings JSON field
	Variable string // CSS custom property
	Default  string
	field    func(*models.Settings) *string
}

// Value returns the configured color of the slot, or "" when unset
func (s Slot) Value(settings models.Settings) string {
	return *s.field(&settings)
}

// Set writes the slot's color into settings
func (s Slot) Set(settings *models.Settings, hex string) {
	*s.field(settings) = hex
}

var slots = []Slot{
	{"primaryColor", "--color-primary", "#f45d7e", func(s *models.Settings) *string { return &s.PrimaryColor }},
	{"lightColor", "--color-light", "#ffeef1", func(s *models.Settings) *string { return &s.LightColor }},
	{"textColor", "--color-text", "#292524", func(s *models.Settings) *string { return &s.TextColor }},
	{"globalBtnColor", "--color-global-btn", "#f45d7e", func(s *models.Settings) *string { return &s.GlobalBtnColor }},
	{"waIconColor", "--color-wa-icon", "#25D366", func(s *models.Settings) *string { return &s.WaIconColor }},
	{"navGlassColor", "--color-nav-glass", "#FFFFFFB3", func(s *models.Settings) *string { return &s.NavGlassColor }},
	{"cardBgColor", "--color-card-bg", "#ffffff", func(s *models.Settings) *string { return &s.CardBgColor }},
	{"cardBtnColor", "--color-card-btn", "#f45d7e", func(s *models.Settings) *string { return &s.CardBtnColor }},
}

// Slots lists every color slot in stylesheet order
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// SlotFor finds a slot by its settings field name
func SlotFor(setting string) (Slot, bool) {
	for _, s := range slots {
		if s.Setting == setting {
			return s, true
		}
	}
	return Slot{}, false
}

// DefaultColor is the color a slot falls back to, as used by the picker's reset
func DefaultColor(setting string) (string, bool) {
	s, ok := SlotFor(setting)
	if !ok {
		return "", false
	}
	return s.Default, true
}
