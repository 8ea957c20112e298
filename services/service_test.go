package services

import (
	"testing"

	"quickbite/entity"
	"quickbite/pkg/mailer"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB gives every test its own in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Account{},
		&entity.User{},
		&entity.Store{},
		&entity.Meal{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Rating{},
		&entity.ChatRoom{},
		&entity.Message{},
		&entity.MerchantApplication{},
		&entity.ApprovedStaff{},
		&entity.RejectedStaff{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestMailer has no API key, so every send fails fast without touching the
// network. The services under test treat those sends as best-effort.
func newTestMailer() *mailer.Mailer {
	return mailer.New("", "", "noreply@test.local")
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}
