package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Config struct {
		App      `json:"app"      toml:"app"`
		HTTP     `json:"http"     toml:"http"`
		DB       `json:"db"       toml:"db"`
		Razorpay `json:"razorpay" toml:"razorpay"`
		Storage  `json:"storage"  toml:"storage"`
		Workers  `json:"workers"  toml:"workers"`
		Log      `json:"logger"   toml:"logger"`
	}

	App struct {
		Name        string `json:"name"        toml:"name"        env:"APP_NAME"`
		Environment string `json:"environment" toml:"environment" env:"ENV_NAME" env-default:"dev"`
		Debug       bool   `json:"debug"       toml:"debug"       env:"DEBUG"    env-default:"false"`
	}

	HTTP struct {
		Port string `json:"port" toml:"port" env:"HTTP_PORT" env-default:"8080"`
	}

	DB struct {
		DatabaseURL       string `json:"database_url"        toml:"database_url"        env:"DATABASE_URL"`
		PoolMax           int32  `json:"pool_max"            toml:"pool_max"            env:"PG_POOL_MAX" env-default:"10"`
		ConnectTimeout    int    `json:"connect_timeout"     toml:"connect_timeout"     env:"PG_POOL_CONN_TIMEOUT" env-default:"5"`
		HealthCheckPeriod int    `json:"health_check_period" toml:"health_check_period" env:"PG_POOL_HEALTHCHECK" env-default:"1"`
	}

	// Razorpay gateway credentials are environment-only: they must never
	// live in a config file checked into the repo.
	Razorpay struct {
		KeyID     string `json:"-" toml:"-" env:"RAZORPAY_KEY_ID"`
		KeySecret string `json:"-" toml:"-" env:"RAZORPAY_KEY_SECRET"`
		APIURL    string `json:"api_url" toml:"api_url" env:"RAZORPAY_API_URL" env-default:"https://api.razorpay.com"`
	}

	Storage struct {
		PublicBaseURL string `json:"public_base_url" toml:"public_base_url" env:"STORAGE_PUBLIC_URL"`
	}

	Workers struct {
		// OrdersRefreshInterval is in minutes.
		OrdersRefreshInterval int `json:"orders_refresh_interval" toml:"orders_refresh_interval" env:"ORDERS_REFRESH_INTERVAL" env-default:"5"`
		OrdersWindowLimit     int `json:"orders_window_limit"     toml:"orders_window_limit"     env:"ORDERS_WINDOW_LIMIT" env-default:"200"`
	}

	Log struct {
		Level slog.Level `json:"level" toml:"level" env:"LOG_LEVEL"`
	}
)

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	_, b, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(b)

	configTomlPath := filepath.Join(basePath, "config.toml")
	err := cleanenv.ReadConfig(configTomlPath, cfg)
	if err != nil {
		configJsonPath := filepath.Join(basePath, "config.json")
		err = cleanenv.ReadConfig(configJsonPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	err = cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("env read error: %w", err)
	}

	return cfg, nil
}
