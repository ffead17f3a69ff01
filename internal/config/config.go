package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Business  BusinessConfig
	Printer   PrinterConfig
	Catalog   CatalogConfig
	Checkout  CheckoutConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type BackendConfig struct {
	BaseURL        string
	Token          string
	RefreshToken   string
	RefreshURL     string
	RequestTimeout time.Duration
}

type BusinessConfig struct {
	Name     string
	Address  string
	Phone    string
	TaxID    string
	Currency string
	Cashier  string
}

type PrinterConfig struct {
	Type       string
	USBPath    string
	Address    string
	PaperWidth int
}

type CatalogConfig struct {
	RefreshInterval time.Duration
}

type CheckoutConfig struct {
	SubmitTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-terminal")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	viper.SetDefault("BACKEND_TOKEN", "")
	viper.SetDefault("BACKEND_REFRESH_TOKEN", "")
	viper.SetDefault("BACKEND_REFRESH_URL", "")
	viper.SetDefault("BACKEND_REQUEST_TIMEOUT_SECONDS", 10)
	viper.SetDefault("BUSINESS_NAME", "")
	viper.SetDefault("BUSINESS_ADDRESS", "")
	viper.SetDefault("BUSINESS_PHONE", "")
	viper.SetDefault("BUSINESS_TAX_ID", "")
	viper.SetDefault("BUSINESS_CURRENCY", "KES")
	viper.SetDefault("BUSINESS_CASHIER", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_PAPER_WIDTH", 32)
	viper.SetDefault("CATALOG_REFRESH_SECONDS", 300)
	viper.SetDefault("CHECKOUT_SUBMIT_TIMEOUT_SECONDS", 15)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL:        viper.GetString("BACKEND_BASE_URL"),
			Token:          viper.GetString("BACKEND_TOKEN"),
			RefreshToken:   viper.GetString("BACKEND_REFRESH_TOKEN"),
			RefreshURL:     viper.GetString("BACKEND_REFRESH_URL"),
			RequestTimeout: time.Duration(viper.GetInt("BACKEND_REQUEST_TIMEOUT_SECONDS")) * time.Second,
		},
		Business: BusinessConfig{
			Name:     viper.GetString("BUSINESS_NAME"),
			Address:  viper.GetString("BUSINESS_ADDRESS"),
			Phone:    viper.GetString("BUSINESS_PHONE"),
			TaxID:    viper.GetString("BUSINESS_TAX_ID"),
			Currency: viper.GetString("BUSINESS_CURRENCY"),
			Cashier:  viper.GetString("BUSINESS_CASHIER"),
		},
		Printer: PrinterConfig{
			Type:       viper.GetString("PRINTER_TYPE"),
			USBPath:    viper.GetString("PRINTER_USB_PATH"),
			Address:    viper.GetString("PRINTER_ADDRESS"),
			PaperWidth: viper.GetInt("PRINTER_PAPER_WIDTH"),
		},
		Catalog: CatalogConfig{
			RefreshInterval: time.Duration(viper.GetInt("CATALOG_REFRESH_SECONDS")) * time.Second,
		},
		Checkout: CheckoutConfig{
			SubmitTimeout: time.Duration(viper.GetInt("CHECKOUT_SUBMIT_TIMEOUT_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}
