package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"perfectmatch/internal/buildinfo"
	"perfectmatch/internal/client/cli"
	"perfectmatch/internal/client/config"
	"perfectmatch/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
