package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                      string
	PublicURL                 string
	VerifyToken               string
	WhatsAppToken             string
	PhoneNumberID             string
	WhatsAppBusinessAccountID string
	AppID                     string
	GraphBaseURL              string
	GraphAPIVersion           string
	DBHost                    string
	DBPort                    string
	DBUser                    string
	DBPassword                string
	DBName                    string
	DBSSLMode                 string
	DBPath                    string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:                      getEnv("PORT", "8080"),
		PublicURL:                 getEnv("PUBLIC_URL", "http://localhost:8080"),
		VerifyToken:               getEnv("VERIFY_TOKEN", ""),
		WhatsAppToken:             getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID:             getEnv("PHONE_NUMBER_ID", ""),
		WhatsAppBusinessAccountID: getEnv("WABA_ID", ""),
		AppID:                     getEnv("APP_ID", ""),
		GraphBaseURL:              getEnv("GRAPH_BASE_URL", "https://graph.facebook.com"),
		GraphAPIVersion:           getEnv("GRAPH_API_VERSION", "v21.0"),
		DBHost:                    getEnv("DB_HOST", ""),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "postgres"),
		DBPassword:                getEnv("DB_PASSWORD", ""),
		DBName:                    getEnv("DB_NAME", "admin_gateway"),
		DBSSLMode:                 getEnv("DB_SSLMODE", "disable"),
		DBPath:                    getEnv("DB_PATH", "./admin-gateway.db"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
