package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPort is used when PORT is not set.
const DefaultPort = 3000

type Config struct {
	Port int
}

// Load reads the server configuration through getenv, normally os.Getenv
// after the .env file has been applied.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{Port: DefaultPort}

	raw := strings.TrimSpace(getenv("PORT"))
	if raw == "" {
		return cfg, nil
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parse PORT %q", raw)
	}
	if port < 1 || port > 65535 {
		return Config{}, errors.Errorf("PORT %d out of range", port)
	}
	cfg.Port = port
	return cfg, nil
}
