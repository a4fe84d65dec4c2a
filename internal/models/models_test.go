package models

import (
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestCreateEntry(t *testing.T) {
	db := setupTestDB(t)

	entry := Entry{Key: "portfolio", Value: "[]"}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	var retrieved Entry
	if err := db.First(&retrieved, "entry_key = ?", "portfolio").Error; err != nil {
		t.Fatalf("Failed to retrieve entry: %v", err)
	}

	if retrieved.Value != "[]" {
		t.Errorf("Expected value [], got %s", retrieved.Value)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestEntryKeyIsUnique(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&Entry{Key: "settings", Value: "{}"})
	err := db.Create(&Entry{Key: "settings", Value: "{}"}).Error
	if err == nil {
		t.Error("Expected duplicate key to fail")
	}
}

func TestSettingsOmitEmptyFields(t *testing.T) {
	data, err := json.Marshal(Settings{PrimaryColor: "#FF0000"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if string(data) != `{"primaryColor":"#FF0000"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}

func TestPortfolioItemJSONNames(t *testing.T) {
	var item PortfolioItem
	raw := `{"id":1700000000000,"image":"a.jpg","title":"T","description":"D","category":"Nail Art"}`
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if item.ID != 1700000000000 || item.Category != "Nail Art" {
		t.Errorf("Unexpected item: %+v", item)
	}
}
