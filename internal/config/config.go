package config

import (
	"fmt"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

type Config struct {
	APIBaseURL            string        `mapstructure:"STOREFRONT_API_BASE_URL"`
	RequestTimeout        time.Duration `mapstructure:"STOREFRONT_REQUEST_TIMEOUT"`
	Currency              string        `mapstructure:"STOREFRONT_CURRENCY"`
	FreeShippingThreshold string        `mapstructure:"STOREFRONT_FREE_SHIPPING_THRESHOLD"`
}

// Load reads configuration from the given env file when path is non-empty,
// with process environment variables taking precedence. Client config is
// read once at startup; there is no hot reload.
func Load(path string) (Config, error) {
	v := viper.New()

	// defaults also register the keys so AutomaticEnv can unmarshal them
	v.SetDefault("STOREFRONT_API_BASE_URL", "")
	v.SetDefault("STOREFRONT_REQUEST_TIMEOUT", 10*time.Second)
	v.SetDefault("STOREFRONT_CURRENCY", "USD")
	v.SetDefault("STOREFRONT_FREE_SHIPPING_THRESHOLD", "50.00")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("v.Unmarshal: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("STOREFRONT_API_BASE_URL is empty")
	}

	return cfg, nil
}

// FreeShipping returns the free-shipping threshold as Money in the
// configured currency.
func (c Config) FreeShipping() (domain.Money, error) {
	cur, err := currency.ParseISO(c.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}

	amount, err := decimal.NewFromString(c.FreeShippingThreshold)
	if err != nil {
		return domain.Money{}, fmt.Errorf("threshold[%s] is not valid: %w", c.FreeShippingThreshold, err)
	}

	return domain.Money{Amount: amount, Currency: cur}, nil
}
