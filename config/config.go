package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database from environment configuration. MySQL is the
// production store; DB_DRIVER=sqlite switches to a local file for
// development.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "scholarship.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	host := envOr("DB_HOST", "127.0.0.1")
	port := envOr("DB_PORT", "3306")
	user := envOr("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	name := envOr("DB_NAME", "scholarship_app")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// StrictProgression reports whether status changes must follow the linear
// review pipeline instead of allowing staff to jump stages.
func StrictProgression() bool {
	return os.Getenv("STRICT_PROGRESSION") == "true"
}

// UploadDir is the root directory for stored application documents.
func UploadDir() string {
	return envOr("UPLOAD_DIR", "public/uploads")
}
