package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/evote/internal/buildinfo"
	"github.com/dmitrijs2005/evote/internal/server"
	"github.com/dmitrijs2005/evote/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "evote server: %v\n", err)
		os.Exit(1)
	}

	app.Run(context.Background())
}
