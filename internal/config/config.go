package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	EventSubjectBase       string
	JWTSecret              string
	JWTTTL                 time.Duration
	CORSAllowOrigins       string
	PaymentProvider        string
	PaymentCurrency        string
	PaymentMaxRetries      int
	PaymentRetryBase       time.Duration
	PaymentIntentRate      int
	StripeSecretKey        string
	MidtransServerKey      string
	MidtransProduction     bool
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	UploadMaxMB            int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SKILLPATH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SkillPath API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("events.subject", "skillpath")
	v.SetDefault("jwt.ttl", "4h")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("payment.provider", "stripe")
	v.SetDefault("payment.max_retries", 3)
	v.SetDefault("payment.retry_base", "200ms")
	v.SetDefault("payment.intent_rate", 10)
	v.SetDefault("cloudinary.folder", "skillpath/images")
	v.SetDefault("upload.max_mb", 5)

	ttl, err := parseDuration(v.GetString("jwt.ttl"), 4*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	retryBase, err := parseDuration(v.GetString("payment.retry_base"), 200*time.Millisecond)
	if err != nil {
		return Config{}, fmt.Errorf("invalid payment retry base: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		EventSubjectBase:       v.GetString("events.subject"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTTTL:                 ttl,
		CORSAllowOrigins:       v.GetString("cors.allow_origins"),
		PaymentProvider:        strings.ToLower(strings.TrimSpace(v.GetString("payment.provider"))),
		PaymentCurrency:        strings.ToLower(strings.TrimSpace(v.GetString("payment.currency"))),
		PaymentMaxRetries:      v.GetInt("payment.max_retries"),
		PaymentRetryBase:       retryBase,
		PaymentIntentRate:      v.GetInt("payment.intent_rate"),
		StripeSecretKey:        v.GetString("stripe.secret_key"),
		MidtransServerKey:      v.GetString("midtrans.server_key"),
		MidtransProduction:     v.GetBool("midtrans.production"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		UploadMaxMB:            v.GetInt("upload.max_mb"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.PaymentProvider {
	case "stripe":
		if cfg.PaymentCurrency == "" {
			cfg.PaymentCurrency = "usd"
		}
	case "midtrans":
		if cfg.PaymentCurrency == "" {
			cfg.PaymentCurrency = "idr"
		}
		if cfg.PaymentCurrency != "idr" {
			return Config{}, fmt.Errorf("midtrans only charges idr, payment currency is %q", cfg.PaymentCurrency)
		}
	default:
		return Config{}, fmt.Errorf("unsupported payment provider %q", cfg.PaymentProvider)
	}

	if cfg.PaymentMaxRetries <= 0 {
		cfg.PaymentMaxRetries = 1
	}

	if cfg.PaymentIntentRate <= 0 {
		cfg.PaymentIntentRate = 10
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 5
	}

	return cfg, nil
}

// AllowedOrigins splits the CORS allow-list into its entries.
func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
