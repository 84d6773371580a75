package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Mongo MongoConfig
	CORS  CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUBTRACK_APP_ENV" default:"dev"`
	Port         string `envconfig:"SUBTRACK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SUBTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUBTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"SUBTRACK_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SUBTRACK_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"SUBTRACK_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SUBTRACK_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type MongoConfig struct {
	URI            string        `envconfig:"SUBTRACK_MONGO_URI" required:"true"`
	Database       string        `envconfig:"SUBTRACK_MONGO_DATABASE" default:"subtrack"`
	ConnectTimeout time.Duration `envconfig:"SUBTRACK_MONGO_CONNECT_TIMEOUT" default:"10s"`
	PingTimeout    time.Duration `envconfig:"SUBTRACK_MONGO_PING_TIMEOUT" default:"5s"`
	MaxPoolSize    uint64        `envconfig:"SUBTRACK_MONGO_MAX_POOL_SIZE" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SUBTRACK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
}
