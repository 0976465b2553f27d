package config

import (
	"log/slog"
	"os"
)

func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		Env:         getenv("APP_ENV", "dev"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		StoreDriver: getenv("STORE_DRIVER", "blink"),
		BackendURL:  getenv("BLINK_BASE_URL", "https://api.blink.new"),
		BackendKey:  os.Getenv("BLINK_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	switch cfg.StoreDriver {
	case "blink":
		cfg.BackendKey = must("BLINK_API_KEY")
	case "postgres":
		cfg.DatabaseURL = must("DATABASE_URL")
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
