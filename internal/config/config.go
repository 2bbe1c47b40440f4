package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	OCR     OCRConfig
	Quality QualityConfig
	Content ContentConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// OCRConfig holds recognition engine and layout reconstruction settings.
type OCRConfig struct {
	Languages       string  `mapstructure:"languages"`
	ConfidenceFloor float64 `mapstructure:"confidence_floor"`
	BandHeight      float64 `mapstructure:"band_height"`
}

// QualityConfig holds image quality gate thresholds.
type QualityConfig struct {
	BlurThreshold float64 `mapstructure:"blur_threshold"`
	MinBrightness float64 `mapstructure:"min_brightness"`
	MaxBrightness float64 `mapstructure:"max_brightness"`
}

// ContentConfig holds paragraph reconstruction heuristics.
type ContentConfig struct {
	MinFlushLen   int    `mapstructure:"min_flush_len"`
	TerminalPunct string `mapstructure:"terminal_punct"`
}

// Load reads configuration from environment variables with the VERIDOC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VERIDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "veridoc")
	v.SetDefault("db.password", "veridoc_secret")
	v.SetDefault("db.name", "veridoc_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "veridoc")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "veridoc-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@veridoc.local")
	v.SetDefault("email.from_name", "VeriDoc")

	// OCR defaults
	v.SetDefault("ocr.languages", "ara+eng")
	v.SetDefault("ocr.confidence_floor", 0.2)
	v.SetDefault("ocr.band_height", 15)

	// Quality gate defaults
	v.SetDefault("quality.blur_threshold", 100)
	v.SetDefault("quality.min_brightness", 30)
	v.SetDefault("quality.max_brightness", 240)

	// Content reconstruction defaults
	v.SetDefault("content.min_flush_len", 60)
	v.SetDefault("content.terminal_punct", ".!?:")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "VERIDOC_SERVER_PORT",
		"server.read_timeout":   "VERIDOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "VERIDOC_SERVER_WRITE_TIMEOUT",
		"server.environment":    "VERIDOC_SERVER_ENVIRONMENT",
		"db.host":               "VERIDOC_DB_HOST",
		"db.port":               "VERIDOC_DB_PORT",
		"db.user":               "VERIDOC_DB_USER",
		"db.password":           "VERIDOC_DB_PASSWORD",
		"db.name":               "VERIDOC_DB_NAME",
		"db.sslmode":            "VERIDOC_DB_SSLMODE",
		"db.max_open":           "VERIDOC_DB_MAX_OPEN",
		"db.max_idle":           "VERIDOC_DB_MAX_IDLE",
		"jwt.secret":            "VERIDOC_JWT_SECRET",
		"jwt.access_expiry":     "VERIDOC_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":    "VERIDOC_JWT_REFRESH_EXPIRY",
		"jwt.issuer":            "VERIDOC_JWT_ISSUER",
		"s3.region":             "VERIDOC_S3_REGION",
		"s3.bucket":             "VERIDOC_S3_BUCKET",
		"s3.endpoint":           "VERIDOC_S3_ENDPOINT",
		"s3.access_key":         "VERIDOC_S3_ACCESS_KEY",
		"s3.secret_key":         "VERIDOC_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "VERIDOC_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":     "VERIDOC_S3_PRESIGN_EXPIRY",
		"log.level":             "VERIDOC_LOG_LEVEL",
		"log.format":            "VERIDOC_LOG_FORMAT",
		"cors.allowed_origins":  "VERIDOC_CORS_ALLOWED_ORIGINS",
		"email.provider":        "VERIDOC_EMAIL_PROVIDER",
		"email.region":          "VERIDOC_EMAIL_REGION",
		"email.from_address":    "VERIDOC_EMAIL_FROM_ADDRESS",
		"email.from_name":       "VERIDOC_EMAIL_FROM_NAME",
		"ocr.languages":         "VERIDOC_OCR_LANGUAGES",
		"ocr.confidence_floor":  "VERIDOC_OCR_CONFIDENCE_FLOOR",
		"ocr.band_height":       "VERIDOC_OCR_BAND_HEIGHT",
		"quality.blur_threshold": "VERIDOC_QUALITY_BLUR_THRESHOLD",
		"quality.min_brightness": "VERIDOC_QUALITY_MIN_BRIGHTNESS",
		"quality.max_brightness": "VERIDOC_QUALITY_MAX_BRIGHTNESS",
		"content.min_flush_len":  "VERIDOC_CONTENT_MIN_FLUSH_LEN",
		"content.terminal_punct": "VERIDOC_CONTENT_TERMINAL_PUNCT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VERIDOC_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VERIDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.OCR = OCRConfig{
		Languages:       v.GetString("ocr.languages"),
		ConfidenceFloor: v.GetFloat64("ocr.confidence_floor"),
		BandHeight:      v.GetFloat64("ocr.band_height"),
	}

	cfg.Quality = QualityConfig{
		BlurThreshold: v.GetFloat64("quality.blur_threshold"),
		MinBrightness: v.GetFloat64("quality.min_brightness"),
		MaxBrightness: v.GetFloat64("quality.max_brightness"),
	}

	cfg.Content = ContentConfig{
		MinFlushLen:   v.GetInt("content.min_flush_len"),
		TerminalPunct: v.GetString("content.terminal_punct"),
	}

	return cfg, nil
}
