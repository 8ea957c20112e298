package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// comma-separated emails allowed to become admin via confirm-admin
	AdminEmails []string

	// transactional mail (optional — sends are best-effort)
	MailAPIKey   string
	MailEndpoint string
	MailFrom     string

	UploadDir string

	// how long an order may sit in pending_payment before the cron cancels it
	OrderPaymentTTL time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DBSource:     getEnv("DB_SOURCE", "quickbite.db"),
		Port:         getEnv("PORT", "8000"),
		JWTSecret:    getEnv("JWT_SECRET", "changeme"),
		JWTTTL:       time.Duration(24) * time.Hour,
		AdminEmails:  splitList(os.Getenv("ADMIN_EMAILS")),
		MailAPIKey:   os.Getenv("MAIL_API_KEY"),
		MailEndpoint: getEnv("MAIL_ENDPOINT", "https://api.resend.com/emails"),
		MailFrom:     getEnv("MAIL_FROM", "QuickBite <no-reply@quickbite.app>"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),

		OrderPaymentTTL: getDuration("ORDER_PAYMENT_TTL", 15*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default", key)
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper เผื่อไฟล์อื่นต้องใช้ (เช่น seed)
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
