// SPDX-License-Identifier: MIT
package theme

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultWhatsAppNumber is used by card links when no number is configured
const DefaultWhatsAppNumber = "5561982412536"

const contactGreeting = "Olá! Gostaria de agendar um horário."

var (
	waMeNumber  = regexp.MustCompile(`wa\.me/(\d+)`)
	phoneNumber = regexp.MustCompile(`phone=(\d+)`)
)

// ContactLink turns the configured WhatsApp value into a link target. A full
// URL is used unchanged; anything else is read as a phone number. It returns
// "" when the value holds no digits.
func ContactLink(configured string) string {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return ""
	}
	lower := strings.ToLower(configured)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return configured
	}

	digits := Digits(configured)
	if digits == "" {
		return ""
	}
	return chatLink(digits, contactGreeting)
}

// CardLink is the "book this" link for one portfolio card
func CardLink(configured, title string) string {
	number := DefaultWhatsAppNumber
	if m := waMeNumber.FindStringSubmatch(configured); m != nil {
		number = m[1]
	} else if m := phoneNumber.FindStringSubmatch(configured); m != nil {
		number = m[1]
	} else if d := Digits(configured); d != "" && !strings.Contains(configured, "://") {
		number = d
	}
	message := "Olá! Amei o trabalho *" + title + "* que vi no seu site. Gostaria de agendar um horário."
	return chatLink(number, message)
}

// Digits strips every non-digit character
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func chatLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + encodeURIComponent(message)
}

// encodeURIComponent escapes like the browser function of the same name:
// spaces become %20 and !'()* are left alone
func encodeURIComponent(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*").Replace(escaped)
}
