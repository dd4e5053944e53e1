// Package loadgen holds the settings for the in-process load generator.
package loadgen

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for a load generator run
type Config struct {
	// Order stream shape
	NumOrders   int
	PriceLevels int     // distinct prices per side
	MidPrice    float64 // center of the generated price band
	TickSize    float64 // distance between adjacent price levels
	MaxQuantity float64

	// Submission pacing, orders per second (0 disables the limiter)
	RatePerSecond int

	// Seed makes a run reproducible
	Seed int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("NUM_ORDERS", 100000)
	v.SetDefault("PRICE_LEVELS", 50)
	v.SetDefault("MID_PRICE", 100.0)
	v.SetDefault("TICK_SIZE", 0.5)
	v.SetDefault("MAX_QUANTITY", 10.0)
	v.SetDefault("RATE_PER_SECOND", 0)
	v.SetDefault("SEED", 42)

	v.AutomaticEnv()

	cfg := &Config{
		NumOrders:     v.GetInt("NUM_ORDERS"),
		PriceLevels:   v.GetInt("PRICE_LEVELS"),
		MidPrice:      v.GetFloat64("MID_PRICE"),
		TickSize:      v.GetFloat64("TICK_SIZE"),
		MaxQuantity:   v.GetFloat64("MAX_QUANTITY"),
		RatePerSecond: v.GetInt("RATE_PER_SECOND"),
		Seed:          v.GetInt64("SEED"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.NumOrders <= 0 {
		return fmt.Errorf("NUM_ORDERS must be positive, got %d", cfg.NumOrders)
	}
	if cfg.PriceLevels <= 0 {
		return fmt.Errorf("PRICE_LEVELS must be positive, got %d", cfg.PriceLevels)
	}
	if cfg.MidPrice <= 0 {
		return fmt.Errorf("MID_PRICE must be positive, got %f", cfg.MidPrice)
	}
	if cfg.TickSize <= 0 {
		return fmt.Errorf("TICK_SIZE must be positive, got %f", cfg.TickSize)
	}
	if cfg.MaxQuantity <= 0 {
		return fmt.Errorf("MAX_QUANTITY must be positive, got %f", cfg.MaxQuantity)
	}
	if cfg.RatePerSecond < 0 {
		return fmt.Errorf("RATE_PER_SECOND must not be negative, got %d", cfg.RatePerSecond)
	}
	return nil
}
