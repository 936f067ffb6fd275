package chronos

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/projectchronos/chronos/chronos/chain"
	"github.com/projectchronos/chronos/chronos/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig           `toml:"log"`
	Server ServerConfig        `toml:"server"`
	DB     database.DBConfig   `toml:"db"`
	Chain  chain.GatewayConfig `toml:"chain"`
	Packs  PacksConfig         `toml:"packs"`
	Spaces SpacesConfig        `toml:"spaces"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type PacksConfig struct {
	// DefaultCreateCount is used when a generation request omits the count.
	DefaultCreateCount int `toml:"default_create_count"`
}

type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	CardRoot string `toml:"cardroot"`
}
