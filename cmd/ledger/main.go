package main

import (
	"context"
	"log"
	"os"

	"github.com/meslee/moneyledger/internal/buildinfo"
	"github.com/meslee/moneyledger/internal/cli"
	"github.com/meslee/moneyledger/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
