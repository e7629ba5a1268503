package config

import (
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string        `env:"MONGO_URI" yaml:"mongo_uri" usage:"MongoDB connection URI"`
	DBName          string        `env:"DB_NAME" yaml:"db_name" default:"convenience_store" usage:"database name"`
	JWTSecret       string        `env:"JWT_SECRET" yaml:"jwt_secret" usage:"HMAC secret for session tokens"`
	SessionTTL      time.Duration `env:"SESSION_TTL" yaml:"session_ttl" default:"24h" usage:"session lifetime"`
	Port            string        `env:"PORT" yaml:"port" default:"8080" usage:"HTTP listen port"`
	LogDev          bool          `env:"LOG_DEV" yaml:"log_dev" default:"false" usage:"human readable console logs"`
	SeedData        bool          `env:"SEED_DATA" yaml:"seed_data" default:"false" usage:"insert sample catalogue and accounts into empty collections"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" yaml:"request_timeout" default:"5s" usage:"per database call timeout"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" default:"15s" usage:"graceful shutdown limit"`
}

// Load reads .env (when present), config.yaml and the environment into
// AppEnv. Environment variables win over the yaml file.
func Load() error {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg, err := load([]string{"config.yaml", "/etc/convenience-store/config.yaml"})
	if err != nil {
		return err
	}
	AppEnv = *cfg
	return nil
}

func load(files []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:        true,
		AllowUnknownEnvs: true,
		Files:            files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.MongoURI = strings.TrimSpace(c.MongoURI)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")

	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 5 * time.Second
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
