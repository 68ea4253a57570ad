package main

import (
	"context"
	"log"
	"os"

	"github.com/parishportal/parishportal/internal/buildinfo"
	"github.com/parishportal/parishportal/internal/client/cli"
	"github.com/parishportal/parishportal/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
