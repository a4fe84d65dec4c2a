// SPDX-License-Identifier: MIT

// Package theme applies the saved site settings to a page: color slots become
// CSS custom properties, and the salon name, WhatsApp link and hero image are
// written into their elements.
package theme

import (
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/logging"
	"github.com/janayne/salon/internal/models"
)

// SettingsSource supplies the current settings record
type SettingsSource interface {
	Settings() models.Settings
}

// Applier themes documents from the stored settings
type Applier struct {
	source SettingsSource
	logger *zap.Logger
}

// NewApplier creates an applier reading from source
func NewApplier(source SettingsSource, logger *zap.Logger) *Applier {
	return &Applier{source: source, logger: logging.OrNop(logger)}
}

// ApplyTheme reads the settings and applies them to doc
func (a *Applier) ApplyTheme(doc Document) {
	settings := a.source.Settings()
	Apply(doc, settings)
	a.logger.Debug("applied theme",
		zap.Bool("salon_name", settings.SalonName != ""),
		zap.Bool("whatsapp", settings.WhatsappLink != ""),
		zap.Bool("hero_image", settings.HeroImage != ""),
	)
}

// CSS renders the stylesheet for the stored settings
func (a *Applier) CSS() string {
	return GenerateCSS(a.source.Settings())
}

// Apply writes settings onto doc. Color slots always get a value, falling
// back to their defaults. Text, link and image targets are left untouched
// when their setting is empty. Applying the same settings twice changes
// nothing the second time.
func Apply(doc Document, settings models.Settings) {
	for _, v := range Variables(settings) {
		doc.SetProperty(v.Name, v.Value)
	}
	if settings.SalonName != "" {
		doc.SetText(RoleSalonName, settings.SalonName)
	}
	if link := ContactLink(settings.WhatsappLink); link != "" {
		doc.SetHref(RoleWhatsApp, link)
	}
	if settings.HeroImage != "" {
		doc.SetImageSource(HeroImageID, settings.HeroImage)
	}
}
