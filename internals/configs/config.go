// file: internals/configs/config.go
package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret          string
	AccessTokenTTL     time.Duration
	Port               string
	CorsAllowedOrigins []string

	MailSlurpAPIKey       string
	MailSlurpBaseURL      string
	MailSlurpCustomDomain string
	MailSlurpDomainID     string

	KafkaBrokers     []string
	KafkaStatusTopic string

	MetricsEnabled bool
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env file not found, using system environment")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running in Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AccessTokenTTL = time.Duration(GetEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute
	Port = GetEnv("PORT", "8000")
	CorsAllowedOrigins = SplitList(GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"))

	MailSlurpAPIKey = GetEnv("MAILSLURP_API_KEY")
	MailSlurpBaseURL = GetEnv("MAILSLURP_BASE_URL", "https://api.mailslurp.com")
	MailSlurpCustomDomain = GetEnv("MAILSLURP_CUSTOM_DOMAIN", "student-portal.in")
	MailSlurpDomainID = GetEnv("MAILSLURP_DOMAIN_ID", "a71ef356-4ac8-4767-afcc-b607cc7ebe67")

	KafkaBrokers = SplitList(GetEnv("KAFKA_BROKERS"))
	KafkaStatusTopic = GetEnv("KAFKA_STATUS_TOPIC", "student.status.changed")

	MetricsEnabled = GetEnvBool("METRICS_ENABLED", true)

	reportKey("JWT_SECRET", JWTSecret)
	reportKey("MAILSLURP_API_KEY", MailSlurpAPIKey)
	if len(KafkaBrokers) == 0 {
		log.Println("[INFO] KAFKA_BROKERS not set, status events will not be published")
	}
}

func reportKey(name, value string) {
	if value == "" {
		log.Printf("[WARN] %s is not set!", name)
		return
	}
	log.Printf("[INFO] %s loaded.", name)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a number, using %d", key, raw, def)
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// SplitList turns "a, b,,c" into [a b c].
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
