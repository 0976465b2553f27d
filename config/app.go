package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	Env         string `env:"APP_ENV" default:"dev"`
	JWTSecret   string `env:"JWT_SECRET"`
	StoreDriver string `env:"STORE_DRIVER" default:"blink"`
	BackendURL  string `env:"BLINK_BASE_URL"`
	BackendKey  string `env:"BLINK_API_KEY"`
	DatabaseURL string `env:"DATABASE_URL"`
}
