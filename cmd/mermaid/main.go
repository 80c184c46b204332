package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mermaid_slot/internal/app"
)

func main() {
	httpMode := flag.Bool("http", false, "serve the JSON API instead of the terminal game")
	gameConfig := flag.String("config", "", "path to the game config (yaml), built-in config if empty")
	envFile := flag.String("env", ".env", "path to the env file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApp(app.Options{
		HTTP:           *httpMode,
		EnvPath:        *envFile,
		GameConfigPath: *gameConfig,
		In:             os.Stdin,
		Out:            os.Stdout,
	})
	if err := a.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
