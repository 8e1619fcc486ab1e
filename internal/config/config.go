package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvFile is the optional dotenv file read from the working directory.
const EnvFile = ".env"

type App struct {
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"` // debug, info, warn or error
	LogPretty       bool          `env:"LOG_PRETTY" env-default:"true"`
}

type ServerConfig struct {
	Host              string        `env:"SERVER_HOST" env-default:"localhost"`
	Port              string        `env:"HTTP_PORT" env-default:"8000"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
}

// LibraryConfig locates the served tree. Root is kept relative so it
// resolves against the working directory on every request.
type LibraryConfig struct {
	Root     string `env:"LIBRARY_ROOT" env-default:"."`
	SongsDir string `env:"SONGS_DIR" env-default:"songs"`
}

type Config struct {
	Server  ServerConfig
	App     App
	Library LibraryConfig
}

// Load reads an optional .env file and then the process environment.
// With nothing set, the defaults describe a server on localhost:8000
// serving the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *ServerConfig) URL() string {
	return "http://" + c.Address()
}
