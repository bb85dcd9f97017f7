package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "SECRET_KEY_FOR_DEVELOPMENT_ONLY"

var (
	AppEnv              string
	Port                string
	JWTSecret           string
	JWTTTL              time.Duration
	FrontendURL         string
	SchoolTimezone      string
	UploadDir           string
	ExportDir           string
	AutoMigrate         bool
	BlacklistCron       string
	ExportCron          string
	ExportRetentionDays int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	envLoaded := false
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		envLoaded = godotenv.Load() == nil
	}

	AppEnv = GetEnv("APP_ENV", "development")
	InitLogger()

	log := Component("config")
	switch {
	case os.Getenv("RAILWAY_ENVIRONMENT") != "":
		log.Info().Msg("Running in Railway, menggunakan ENV dari sistem")
	case envLoaded:
		log.Info().Msg(".env file berhasil dimuat")
	default:
		log.Warn().Msg("Tidak menemukan .env file, menggunakan ENV dari sistem")
	}

	Port = GetEnv("PORT", "5000")
	FrontendURL = GetEnv("FRONTEND_URL", "http://localhost:5173")
	SchoolTimezone = GetEnv("SCHOOL_TIMEZONE", "Asia/Jakarta")
	UploadDir = GetEnv("UPLOAD_DIR", "uploads")
	ExportDir = GetEnv("EXPORT_DIR", "uploads/exports")
	AutoMigrate = GetEnvBool("DB_AUTOMIGRATE", false)
	BlacklistCron = GetEnv("TOKEN_BLACKLIST_CRON", "0 3 * * *")
	ExportCron = GetEnv("EXPORT_CLEANUP_CRON", "30 3 * * *")
	ExportRetentionDays = GetEnvInt("EXPORT_RETENTION_DAYS", 7)
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", 24*7)) * time.Hour

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		JWTSecret = devJWTSecret
		log.Warn().Msg("JWT_SECRET belum diset, memakai secret development")
	} else {
		log.Info().Msg("JWT_SECRET berhasil dimuat")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	switch strings.ToLower(GetEnv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
