// Command eventctl administers an eventhub store from the terminal.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"eventhub/internal/shared/config"
	"eventhub/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	a := &app{
		cfg: cfg,
		log: logger.NewWithWriter(os.Stderr, cfg.LogLevel),
		out: os.Stdout,
	}
	defer a.close()

	if err := newRootCmd(a).Execute(); err != nil {
		a.close()
		os.Exit(1)
	}
}
