package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds everything the relay reads from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string
	DatabaseDSN    string
}

// Load reads .env (if present) and the environment. Defaults match the
// local development setup: port 4000, frontend on localhost:3000.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:           os.Getenv("PORT"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		AllowedOrigins: splitOrigins(os.Getenv("APP_URL")),
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	return cfg
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// InitDB opens the MySQL connection for the durable store.
func InitDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}
