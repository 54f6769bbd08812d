// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	ServerAddress     string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	TokenType         string        `mapstructure:"TOKEN_TYPE"`
	Environement      string        `mapstructure:"GO_ENV"`
	FSPID             string        `mapstructure:"FSP_ID"`
	SwitchURL         string        `mapstructure:"SWITCH_URL"`
	AllowedFSPs       []string      `mapstructure:"ALLOWED_FSPS"`
	GatewayTimeout    time.Duration `mapstructure:"GATEWAY_TIMEOUT"`
	CallbackTimeout   time.Duration `mapstructure:"CALLBACK_TIMEOUT"`
	QuoteExpiration   time.Duration `mapstructure:"QUOTE_EXPIRATION"`
	InboundQuoteTTL   time.Duration `mapstructure:"INBOUND_QUOTE_EXPIRATION"`
	QuoteFee          string        `mapstructure:"QUOTE_FEE"`
	OTPTTL            time.Duration `mapstructure:"OTP_TTL"`
	FulfilmentSecret  string        `mapstructure:"FULFILMENT_SECRET"`
	AMQPURL           string        `mapstructure:"AMQP_URL"`
	AMQPExchange      string        `mapstructure:"AMQP_EXCHANGE"`
}

// Load reads configuration from file or environment variables.
//
// Durations that are absent fall back to the protocol defaults.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("TOKEN_TYPE", "paseto")
	v.SetDefault("GATEWAY_TIMEOUT", 5*time.Second)
	v.SetDefault("CALLBACK_TIMEOUT", 10*time.Second)
	v.SetDefault("QUOTE_EXPIRATION", time.Hour)
	v.SetDefault("INBOUND_QUOTE_EXPIRATION", 2*time.Minute)
	v.SetDefault("QUOTE_FEE", "0")
	v.SetDefault("OTP_TTL", 5*time.Minute)
	v.SetDefault("AMQP_EXCHANGE", "wallet.events")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
