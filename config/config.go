package config

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"11000"`
	APIKey  string `env:"API_KEY,required"`
}

type DatabaseConfig struct {
	Host            string `env:"ACTSLAW_POSTGRES_HOST,required"`
	Port            string `env:"ACTSLAW_POSTGRES_PORT,required"`
	User            string `env:"ACTSLAW_POSTGRES_USER,required"`
	DBName          string `env:"ACTSLAW_POSTGRES_DB_NAME,required"`
	Password        string `env:"ACTSLAW_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"ACTSLAW_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"ACTSLAW_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"ACTSLAW_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"ACTSLAW_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"ACTSLAW_POSTGRES_SSL_MODE" envDefault:"require"`
}

type SmartAdvocateConfig struct {
	Url            string `env:"SMARTADVOCATE_PROXY_URL" envDefault:"http://localhost:5099" validate:"required"`
	ApiKey         string `env:"SMARTADVOCATE_API_KEY"`
	TimeoutSeconds int    `env:"SMARTADVOCATE_TIMEOUT_SECONDS" envDefault:"30"`
}

type ContentConfig struct {
	CacheSize          int `env:"CONTENT_CACHE_SIZE" envDefault:"256"`
	CacheTTLMinutes    int `env:"CONTENT_CACHE_TTL_MINUTES" envDefault:"15"`
	HandleTTLMinutes   int `env:"RENDER_HANDLE_TTL_MINUTES" envDefault:"30"`
	JanitorIntervalMin int `env:"RENDER_JANITOR_INTERVAL_MINUTES" envDefault:"5"`
}
