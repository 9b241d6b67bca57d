package main

import (
	"os"

	"github.com/mealbadge/mealbadge-go/internal/cli"
	"github.com/mealbadge/mealbadge-go/internal/pkg/logger"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
