package configs

import (
	"fmt"
	"strings"
	"time"

	"sabores/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// Open เปิด connection ตาม driver ใน config (sqlite | postgres)
func Open(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(source))
	case "postgres", "postgresql":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// sqliteDSN เติม parameter ที่ทุก connection ใน pool ต้องมี
// _txlock=immediate: transaction ที่อ่านก่อนเขียน (สร้าง order, เพิ่มของในตะกร้า) จอง write lock ตั้งแต่ BEGIN
// จึงรอคิวตาม busy timeout แทนการได้ SQLITE_BUSY ตอน upgrade lock
func sqliteDSN(source string) string {
	params := []struct{ key, value string }{
		{"_foreign_keys", "on"},
		{"_txlock", "immediate"},
		{"_busy_timeout", "5000"},
	}
	for _, p := range params {
		if strings.Contains(source, p.key+"=") || (p.key == "_foreign_keys" && strings.Contains(source, "_fk=")) {
			continue
		}
		sep := "?"
		if strings.Contains(source, "?") {
			sep = "&"
		}
		source += sep + p.key + "=" + p.value
	}
	return source
}

func ConnectionDB(cfg *Config) error {
	database, err := Open(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	return nil
}

func SetupDatabase(database *gorm.DB) error {
	// Migrate the schema
	return database.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.PaymentMethod{},
		&entity.SupportTicket{}, &entity.SupportMessage{},
	)
}
