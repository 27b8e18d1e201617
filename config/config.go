// File: /config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	Mode           string // gin mode: debug/release/test
	AllowedOrigins []string

	Database  DatabaseConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type DatabaseConfig struct {
	Driver          string // mysql, postgres or sqlite (local development)
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string // bcrypt
	AdminSessionTTL   time.Duration
	UserTokenTTL      time.Duration
	CodeTTL           time.Duration
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type UploadConfig struct {
	Dir           string
	PublicPrefix  string
	MaxImageBytes int64
	MaxVideoBytes int64
	MaxImageWidth int
	// MaxImagePixels caps width*height before an image is decoded.
	MaxImagePixels int
}

type RateLimitConfig struct {
	SubmissionsPerMinute int
	SubmissionBurst      int
	AuthPerMinute        int
	AuthBurst            int
}

// DevJWTSecret is only accepted in debug and test mode.
const DevJWTSecret = "your-secret-key"

const minJWTSecretLen = 32

type JobsConfig struct {
	AnnouncementExpiryCron string
}

// Load reads .env (optional), config/config.yaml (optional) and the environment.
// Environment variables win over the yaml file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("server.port"),
		Mode:           v.GetString("server.mode"),
		AllowedOrigins: splitList(v.GetStringSlice("server.allowed_origins")),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("auth.jwt_secret"),
			AdminEmail:        strings.ToLower(strings.TrimSpace(v.GetString("auth.admin_email"))),
			AdminPasswordHash: v.GetString("auth.admin_password_hash"),
			AdminSessionTTL:   v.GetDuration("auth.admin_session_ttl"),
			UserTokenTTL:      v.GetDuration("auth.user_token_ttl"),
			CodeTTL:           v.GetDuration("auth.code_ttl"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("smtp.host"),
			Port:      v.GetInt("smtp.port"),
			Username:  v.GetString("smtp.username"),
			Password:  v.GetString("smtp.password"),
			FromEmail: v.GetString("smtp.from_email"),
			FromName:  v.GetString("smtp.from_name"),
		},
		Upload: UploadConfig{
			Dir:            v.GetString("upload.dir"),
			PublicPrefix:   v.GetString("upload.public_prefix"),
			MaxImageBytes:  v.GetInt64("upload.max_image_bytes"),
			MaxVideoBytes:  v.GetInt64("upload.max_video_bytes"),
			MaxImageWidth:  v.GetInt("upload.max_image_width"),
			MaxImagePixels: v.GetInt("upload.max_image_pixels"),
		},
		RateLimit: RateLimitConfig{
			SubmissionsPerMinute: v.GetInt("rate_limit.submissions_per_minute"),
			SubmissionBurst:      v.GetInt("rate_limit.submission_burst"),
			AuthPerMinute:        v.GetInt("rate_limit.auth_per_minute"),
			AuthBurst:            v.GetInt("rate_limit.auth_burst"),
		},
		Jobs: JobsConfig{
			AnnouncementExpiryCron: v.GetString("jobs.announcement_expiry_cron"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.url", "user:password@tcp(localhost:3306)/etkinlik?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 10*time.Minute)

	v.SetDefault("auth.jwt_secret", DevJWTSecret)
	v.SetDefault("auth.admin_email", "admin@example.com")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.admin_session_ttl", 8*time.Hour)
	v.SetDefault("auth.user_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.code_ttl", 10*time.Minute)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 2525)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from_email", "noreply@example.com")
	v.SetDefault("smtp.from_name", "Kent Etkinlik Rehberi")

	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.public_prefix", "/uploads")
	v.SetDefault("upload.max_image_bytes", 5*1024*1024)
	v.SetDefault("upload.max_video_bytes", 100*1024*1024)
	v.SetDefault("upload.max_image_width", 1920)
	v.SetDefault("upload.max_image_pixels", 40_000_000)

	v.SetDefault("rate_limit.submissions_per_minute", 10)
	v.SetDefault("rate_limit.submission_burst", 5)
	v.SetDefault("rate_limit.auth_per_minute", 6)
	v.SetDefault("rate_limit.auth_burst", 3)

	v.SetDefault("jobs.announcement_expiry_cron", "@every 15m")
}

// bindLegacyEnv keeps the short variable names used by deployments.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.mode", "GIN_MODE")
	_ = v.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.admin_email", "ADMIN_EMAIL")
	_ = v.BindEnv("auth.admin_password_hash", "ADMIN_PASSWORD_HASH")
	_ = v.BindEnv("smtp.host", "SMTP_HOST")
	_ = v.BindEnv("smtp.port", "SMTP_PORT")
	_ = v.BindEnv("smtp.username", "SMTP_USERNAME")
	_ = v.BindEnv("smtp.password", "SMTP_PASSWORD")
	_ = v.BindEnv("smtp.from_email", "FROM_EMAIL")
	_ = v.BindEnv("smtp.from_name", "FROM_NAME")
	_ = v.BindEnv("upload.dir", "UPLOAD_DIR")
}

// splitList also accepts a single comma separated entry, as env vars give.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Mode)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Mode == "release" {
		if c.Auth.JWTSecret == DevJWTSecret {
			return fmt.Errorf("auth.jwt_secret is the development placeholder; set JWT_SECRET")
		}
		if len(c.Auth.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("auth.jwt_secret must be at least %d bytes in release mode", minJWTSecretLen)
		}
	}
	return nil
}
