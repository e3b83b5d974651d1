package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV marks this as a deployed environment
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV       string
	PORT         int
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// Media storage (S3-compatible)
	MEDIA_BUCKET     string
	MEDIA_REGION     string
	MEDIA_ENDPOINT   string
	MEDIA_ACCESS_KEY string
	MEDIA_SECRET_KEY string
	MEDIA_CDN_URL    string
	// AI providers. A missing key disables the feature that needs it.
	GROQ_API_KEY     string
	DEEPSEEK_API_KEY string
	OPENAI_API_KEY   string
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		PORT:         port,
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Media storage
		MEDIA_BUCKET:     os.Getenv("MEDIA_BUCKET"),
		MEDIA_REGION:     os.Getenv("MEDIA_REGION"),
		MEDIA_ENDPOINT:   os.Getenv("MEDIA_ENDPOINT"),
		MEDIA_ACCESS_KEY: os.Getenv("MEDIA_ACCESS_KEY"),
		MEDIA_SECRET_KEY: os.Getenv("MEDIA_SECRET_KEY"),
		MEDIA_CDN_URL:    os.Getenv("MEDIA_CDN_URL"),
		// AI providers
		GROQ_API_KEY:     os.Getenv("GROQ_API_KEY"),
		DEEPSEEK_API_KEY: os.Getenv("DEEPSEEK_API_KEY"),
		OPENAI_API_KEY:   os.Getenv("OPENAI_API_KEY"),
	}

	return envVariables, nil
}
