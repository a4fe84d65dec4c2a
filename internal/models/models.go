// SPDX-License-Identifier: MIT
package models

import (
	"time"
)

// Entry is one persisted key of the site store. Value holds the JSON
// document written for that key.
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PortfolioItem is a card shown in the portfolio grid
type PortfolioItem struct {
	ID          int64  `json:"id"`
	Image       string `json:"image"` // URL or data URI
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Settings is the single site appearance record. Every field is optional;
// an empty field means the compiled-in default applies.
type Settings struct {
	HeroImage      string `json:"heroImage,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty" validate:"omitempty,colorhex"`
	LightColor     string `json:"lightColor,omitempty" validate:"omitempty,colorhex"`
	TextColor      string `json:"textColor,omitempty" validate:"omitempty,colorhex"`
	GlobalBtnColor string `json:"globalBtnColor,omitempty" validate:"omitempty,colorhex"`
	WaIconColor    string `json:"waIconColor,omitempty" validate:"omitempty,colorhex"`
	NavGlassColor  string `json:"navGlassColor,omitempty" validate:"omitempty,colorhex"`
	CardBgColor    string `json:"cardBgColor,omitempty" validate:"omitempty,colorhex"`
	CardBtnColor   string `json:"cardBtnColor,omitempty" validate:"omitempty,colorhex"`
	SalonName      string `json:"salonName,omitempty" validate:"max=120"`
	WhatsappLink   string `json:"whatsappLink,omitempty" validate:"max=512"`
}

// Comment is a visitor note left on the public site
type Comment struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

func (Entry) TableName() string {
	return "entries"
}
