package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-env/internal"
	"github.com/rocketscienceinc/tictactoe-env/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yml", "config file, relative paths resolve against the working directory")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(resolveConfigPath(*configPath))

	if err := app.RunApp(newLogger(conf.LogLevel), conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func resolveConfigPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return filepath.Join(baseDir, path)
}

// newLogger - logs go to stderr, stdout is reserved for the board.
func newLogger(levelName string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
