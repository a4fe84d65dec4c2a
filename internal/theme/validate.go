// SPDX-License-Identifier: MIT
package theme

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/janayne/salon/internal/colors"
	"github.com/janayne/salon/internal/models"
)

// ErrInvalidSettings is returned when a settings record fails validation
var ErrInvalidSettings = errors.New("invalid settings")

// Validator checks settings before they are written
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the colorhex rule: #RRGGBB or #RRGGBBAA
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("colorhex", func(fl validator.FieldLevel) bool {
		return colors.IsStoredHex(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Prepare normalizes every configured color to the uppercase stored form and
// validates the result. Any 3, 4, 6 or 8 digit hex is accepted on input.
func (v *Validator) Prepare(settings models.Settings) (models.Settings, error) {
	settings.SalonName = strings.TrimSpace(settings.SalonName)
	settings.WhatsappLink = strings.TrimSpace(settings.WhatsappLink)

	for _, slot := range slots {
		value := strings.TrimSpace(slot.Value(settings))
		if value == "" {
			slot.Set(&settings, "")
			continue
		}
		normalized, err := colors.Normalize(value)
		if err != nil {
			return settings, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, slot.Setting, err)
		}
		slot.Set(&settings, normalized)
	}

	if err := v.validate.Struct(settings); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return settings, fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(fields, ", "))
		}
		return settings, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return settings, nil
}
