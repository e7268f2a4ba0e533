package main

import (
	"context"
	"delivery-dispatch-service/internal/cli"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/obs"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()
	obs.SetupLogger(config.Get("LOG_FORMAT", "console"), zerolog.WarnLevel)

	if err := cli.BuildCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
