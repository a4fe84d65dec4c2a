// SPDX-License-Identifier: MIT
package theme

import (
	"fmt"
	"strings"

	"github.com/janayne/salon/internal/colors"
	"github.com/janayne/salon/internal/models"
)

// Variable is a CSS custom property assignment
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variables maps every color slot to an "R G B" triple. Unset or unreadable
// colors use the slot default. Alpha is left to the stylesheet, which
// composes it with rgb(var(--x) / a).
func Variables(settings models.Settings) []Variable {
	vars := make([]Variable, 0, len(slots))
	for _, slot := range slots {
		vars = append(vars, Variable{Name: slot.Variable, Value: triple(slot.Value(settings), slot.Default)})
	}
	return vars
}

func triple(hex, fallback string) string {
	if hex != "" {
		if c, err := colors.ParseHex(hex); err == nil {
			return c.Triple()
		}
	}
	c, _ := colors.ParseHex(fallback)
	return c.Triple()
}

// GenerateCSS renders the variables as a :root block followed by the base
// rules that consume them
func GenerateCSS(settings models.Settings) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range Variables(settings) {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	b.WriteString(baseCSS)
	return b.String()
}

const baseCSS = `
body {
  color: rgb(var(--color-text));
}

.btn-global {
  background-color: rgb(var(--color-global-btn));
  color: #fff;
}

.whatsapp-float svg {
  fill: rgb(var(--color-wa-icon));
}

.nav-glass {
  background-color: rgb(var(--color-nav-glass) / 0.7);
  backdrop-filter: blur(12px);
}

.portfolio-card {
  background-color: rgb(var(--color-card-bg));
}

.portfolio-card .card-btn {
  background-color: rgb(var(--color-card-btn));
}

.reveal {
  opacity: 0;
  transform: translateY(24px);
  transition: opacity 0.6s, transform 0.6s;
}

.reveal.active {
  opacity: 1;
  transform: none;
}
`
