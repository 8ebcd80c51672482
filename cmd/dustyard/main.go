package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"chosenoffset.com/dustyard/internal/game"
	ebitenrender "chosenoffset.com/dustyard/internal/render/ebiten"
	"chosenoffset.com/dustyard/internal/simulation"
)

// defined flags
var (
	levelFlag   logLevelFlag
	logFileFlag = flag.String("logfile", "", "Write logs to this file instead of the console")
	configFlag  = flag.String("config", "data/dustyard.yaml", "Path to the simulation rules")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	logger := newLogger(*logFileFlag, levelFlag.value)
	slog.SetDefault(logger)

	if err := run(logger, *configFlag); err != nil {
		// Logged through the handler so the error also reaches the log file.
		logger.Error("Dustyard stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Game closed")
}

// newLogger writes to stderr, or to a rotating file when path is set.
func newLogger(path string, level slog.Level) *slog.Logger {
	var out io.Writer = os.Stderr
	if path != "" {
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		}
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func run(logger *slog.Logger, configPath string) error {
	screenWidth := 1280
	screenHeight := 800

	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	engine := ebitenrender.NewEngine()
	manager, err := game.NewManager(cfg, ebitenrender.NewInputSource(), logger, screenWidth, screenHeight)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Dustyard")
	engine.SetWindowResizable(true)

	logger.Info("Starting game", "config", configPath)
	return engine.RunGame(manager)
}
