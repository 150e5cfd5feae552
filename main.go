package main

import (
	"log"
	"os"

	"github.com/iburimskiy/stopwatch/internal/config"
	"github.com/iburimskiy/stopwatch/internal/desktop"
	"github.com/iburimskiy/stopwatch/internal/game"
	"github.com/iburimskiy/stopwatch/internal/sound"
)

func main() {
	logger := log.New(os.Stderr, "stopwatch: ", log.LstdFlags)

	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	g := game.New(cfg, game.Deps{
		Files:    desktop.NewDownloader(cfg.Export.Prompt, cfg.ExportDir(), logger),
		Notifier: desktop.NewNotifier(logger),
		Sound:    sound.NewPlayer(cfg.Sound, logger),
		Logger:   logger,
	})

	if err := game.Run(cfg, g); err != nil {
		logger.Fatal(err)
	}
}
