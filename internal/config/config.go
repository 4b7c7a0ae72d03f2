package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// RandomOpening lets the server pick the opening board for every new game.
const RandomOpening = -1

const randomOpeningValue = "random"

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	// Opening is the local board (0-8) the first move must be played in, or "random".
	Opening string        `yaml:"opening-board" env:"GAME_OPENING_BOARD" env-default:"random"`
	BotSeed int64         `yaml:"bot-seed" env:"GAME_BOT_SEED" env-default:"0"`
	TTL     time.Duration `yaml:"ttl" env:"GAME_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Game.validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// OpeningBoard returns the configured opening board or RandomOpening.
func (that *Game) OpeningBoard() (int, error) {
	if that.Opening == randomOpeningValue {
		return RandomOpening, nil
	}

	board, err := strconv.Atoi(that.Opening)
	if err != nil || board < 0 || board > 8 {
		return 0, fmt.Errorf("opening-board must be %q or 0-8, got %q", randomOpeningValue, that.Opening)
	}

	return board, nil
}

func (that *Game) validate() error {
	if _, err := that.OpeningBoard(); err != nil {
		return err
	}

	if that.TTL < 0 {
		return fmt.Errorf("ttl must not be negative, got %s", that.TTL)
	}

	return nil
}
