package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration

	// External OAuth Providers
	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`

	// UPI payee identity used for every redirect link.
	UPIPayeeVPA     string `mapstructure:"UPI_PAYEE_VPA"`
	UPIPayeeName    string `mapstructure:"UPI_PAYEE_NAME"`
	UPIMerchantCode string `mapstructure:"UPI_MERCHANT_CODE"`

	// Fee defaults applied when a quote omits a component.
	DefaultWiringRate     decimal.Decimal
	DefaultLateFeePercent decimal.Decimal

	// Analytics
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "cable-collect-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("UPI_PAYEE_VPA", "")
	viper.SetDefault("UPI_PAYEE_NAME", "")
	viper.SetDefault("UPI_MERCHANT_CODE", "")
	viper.SetDefault("DEFAULT_WIRING_RATE", "0")
	viper.SetDefault("DEFAULT_LATE_FEE_PERCENT", "0")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "cable-collect-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		if refreshTokenExpiryStr != "" {
			log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration.String())
		}
	}

	wiringRate, err := decimal.NewFromString(viper.GetString("DEFAULT_WIRING_RATE"))
	if err != nil {
		wiringRate = decimal.Zero
		log.Printf("Warning: Invalid value for DEFAULT_WIRING_RATE ('%s'). Defaulting to 0.\n", viper.GetString("DEFAULT_WIRING_RATE"))
	}
	lateFeePercent, err := decimal.NewFromString(viper.GetString("DEFAULT_LATE_FEE_PERCENT"))
	if err != nil {
		lateFeePercent = decimal.Zero
		log.Printf("Warning: Invalid value for DEFAULT_LATE_FEE_PERCENT ('%s'). Defaulting to 0.\n", viper.GetString("DEFAULT_LATE_FEE_PERCENT"))
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.UPIPayeeVPA = viper.GetString("UPI_PAYEE_VPA")
	cfg.UPIPayeeName = viper.GetString("UPI_PAYEE_NAME")
	cfg.UPIMerchantCode = viper.GetString("UPI_MERCHANT_CODE")
	cfg.DefaultWiringRate = wiringRate
	cfg.DefaultLateFeePercent = lateFeePercent
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	if cfg.UPIPayeeVPA == "" {
		log.Println("Warning: UPI_PAYEE_VPA not set. Redirect payments will degrade to manual instructions.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}
