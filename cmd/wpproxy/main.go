package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/five82/wpfeed/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/wpfeed/config.toml)")
	listen := flag.String("listen", "", "listen address (optional, overrides [proxy] listen)")
	target := flag.String("target", "", "upstream origin (optional, overrides [proxy] target)")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := app.RunProxy(ctx, app.ProxyOptions{ConfigPath: *configPath, Listen: *listen, Target: *target})
	if err != nil {
		fmt.Fprintf(os.Stderr, "wpproxy: %v\n", err)
		return 1
	}
	return 0
}
