package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/plantkeeper/internal/client/cli"
	"github.com/dmitrijs2005/plantkeeper/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, os.Stdin, os.Stdout)
	code := cli.Execute(ctx, root, os.Stderr)
	stop()
	os.Exit(code)
}
