package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/wpfeed/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/wpfeed/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional, defaults to ~/.config/wpfeed/prefs.toml)")
	dump := flag.String("dump", "", "fetch once and print posts as json or yaml instead of starting the UI")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}

	var err error
	if *dump != "" {
		err = app.Dump(ctx, opts, os.Stdout, *dump)
	} else {
		err = app.Run(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wpfeed: %v\n", err)
		return 1
	}
	return 0
}
