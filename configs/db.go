package configs

import (
	"quickbite/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) {
	var (
		database *gorm.DB
		err      error
	)
	switch cfg.DBDriver {
	case "postgres":
		database, err = gorm.Open(postgres.Open(cfg.DBSource), &gorm.Config{})
	default:
		database, err = gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.Account{}, &entity.User{},
		&entity.Store{}, &entity.Meal{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Rating{},
		&entity.ChatRoom{}, &entity.Message{},
		&entity.MerchantApplication{}, &entity.ApprovedStaff{}, &entity.RejectedStaff{},
	)
}
