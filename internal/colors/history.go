// SPDX-License-Identifier: MIT
package colors

// HistorySize is the number of recent colors kept
const HistorySize = 16

// DefaultHistory is shown before any color was ever saved
func DefaultHistory() []string {
	return []string{
		"#f45d7e", "#fda4af", "#fb7185", "#e11d48", "#fbcfe8",
		"#38bdf8", "#34d399", "#fbbf24", "#a78bfa", "#a8a29e",
		"#292524", "#ffffff", "#000000",
	}
}

// PushHistory puts hex at the front of history unless an identical string is
// already present. The result never exceeds HistorySize entries. added is
// false when history was returned unchanged.
func PushHistory(history []string, hex string) (updated []string, added bool) {
	for _, existing := range history {
		if existing == hex {
			return history, false
		}
	}

	updated = make([]string, 0, len(history)+1)
	updated = append(updated, hex)
	updated = append(updated, history...)
	if len(updated) > HistorySize {
		updated = updated[:HistorySize]
	}
	return updated, true
}
