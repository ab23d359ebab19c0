// Package config provides configuration management for the vinti4 payment service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Config holds all configuration for the vinti4 payment service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant struct {
		PosID       string `yaml:"pos_id" env:"MERCHANT_POS_ID" env-default:""`
		AuthCode    string `yaml:"auth_code" env:"MERCHANT_AUTH_CODE" env-default:""`
		Endpoint    string `yaml:"endpoint" env:"MERCHANT_ENDPOINT" env-default:"https://mc.vinti4net.cv/BizMPIOnUs/CardPayment"`
		Currency    string `yaml:"currency" env:"MERCHANT_CURRENCY" env-default:"132"`
		Language    string `yaml:"language" env:"MERCHANT_LANGUAGE" env-default:"pt"`
		ResponseUrl string `yaml:"response_url" env:"MERCHANT_RESPONSE_URL" env-default:""`
	} `yaml:"merchant"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
			return
		}
		if err = instance.Validate(); err != nil {
			instance = nil
		}
	})
	return instance, err
}

// Validate checks that merchant credentials are present.
func (c *Config) Validate() error {
	if c.Merchant.PosID == "" || c.Merchant.AuthCode == "" {
		return fmt.Errorf("merchant not configured: pos_id and auth_code are required")
	}
	return nil
}
