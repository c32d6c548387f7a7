package main

import (
	"log"
	"math/rand/v2"

	"go.uber.org/zap"

	"emberfield/config"
	"emberfield/field"
	"emberfield/window"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.Log.Build(false)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	opts := field.Options{Logger: logger}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	if err := window.Run(cfg, opts); err != nil {
		logger.Fatal("window exited", zap.Error(err))
	}
}
