package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/tictactoe"
)

const (
	ModeHuman = "human"
	ModeAuto  = "auto"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Environment Environment `yaml:"environment"`
	Session     Session     `yaml:"session"`
	Redis       Redis       `yaml:"redis"`
}

type Environment struct {
	StartMark  string `yaml:"start-mark" env:"START_MARK" env-default:"O"`
	// nil rewards fall back to tictactoe.DefaultSettings, so an explicit 0 is kept
	RewardO    *int   `yaml:"reward-o"`
	RewardX    *int   `yaml:"reward-x"`
	RewardDraw *int   `yaml:"reward-draw"`
	Seed       uint64 `yaml:"seed" env:"SEED" env-default:"0"`
}

type Session struct {
	Episodes int    `yaml:"episodes" env:"EPISODES" env-default:"1"`
	Mode     string `yaml:"mode" env:"MODE" env-default:"human"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env-default:"0s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Settings - builds the engine settings from the environment section.
func (that *Config) Settings() tictactoe.Settings {
	settings := tictactoe.DefaultSettings()
	settings.StartMark = entity.Mark(that.Environment.StartMark)

	if that.Environment.RewardO != nil {
		settings.Rewards.O = *that.Environment.RewardO
	}
	if that.Environment.RewardX != nil {
		settings.Rewards.X = *that.Environment.RewardX
	}
	if that.Environment.RewardDraw != nil {
		settings.Rewards.Draw = *that.Environment.RewardDraw
	}

	return settings
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
