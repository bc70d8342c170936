package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	DatabaseName  string
	ServerAddr    string
	CORSOrigins   []string
	GradingStrict bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName:  getEnv("DATABASE_NAME", "edumatch"),
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		GradingStrict: getEnv("GRADING_STRICT", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
