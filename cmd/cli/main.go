package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/evote/internal/buildinfo"
	"github.com/dmitrijs2005/evote/internal/client/cli"
	"github.com/dmitrijs2005/evote/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("evote cli: %v", err)
	}

	app.Run(context.Background())
}
