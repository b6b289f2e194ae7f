package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
	Import    ImportConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
	// SeedData loads the starter catalog and boletas on startup
	SeedData bool
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// StoreConfig is the header printed on receipts
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

type PrinterConfig struct {
	Type      string // usb, network or none
	USBPath   string
	Address   string
	CharWidth int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int // seconds
}

type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

type ImportConfig struct {
	MaxSize int64
}

// RequestsPerSecond converts the configured window into a token rate
func (c RateLimitConfig) RequestsPerSecond() float64 {
	if c.Duration <= 0 {
		return float64(c.Requests)
	}
	return float64(c.Requests) / float64(c.Duration)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "produce-store-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("APP_SEED_DATA", true)
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE_NAME", "Verdulería")
	v.SetDefault("STORE_ADDRESS", "")
	v.SetDefault("STORE_PHONE", "")
	v.SetDefault("STORE_TAX_ID", "")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_CHAR_WIDTH", 32)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", []string{})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "produce-store-api")
	v.SetDefault("IMPORT_MAX_SIZE", 5<<20)
}

// Load reads .env (if present) and the environment
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Env:             v.GetString("APP_ENV"),
			Port:            v.GetString("APP_PORT"),
			Debug:           v.GetBool("APP_DEBUG"),
			SeedData:        v.GetBool("APP_SEED_DATA"),
			ShutdownTimeout: v.GetDuration("APP_SHUTDOWN_TIMEOUT"),
		},
		Store: StoreConfig{
			Name:    v.GetString("STORE_NAME"),
			Address: v.GetString("STORE_ADDRESS"),
			Phone:   v.GetString("STORE_PHONE"),
			TaxID:   v.GetString("STORE_TAX_ID"),
		},
		Printer: PrinterConfig{
			Type:      v.GetString("PRINTER_TYPE"),
			USBPath:   v.GetString("PRINTER_USB_PATH"),
			Address:   v.GetString("PRINTER_ADDRESS"),
			CharWidth: v.GetInt("PRINTER_CHAR_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     v.GetBool("OTEL_ENABLED"),
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
		Import: ImportConfig{
			MaxSize: v.GetInt64("IMPORT_MAX_SIZE"),
		},
	}
}
