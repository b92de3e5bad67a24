// Command statline prints a one-line CPU, memory and battery summary for
// status bars and shell prompts.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/Dicklesworthstone/statline/internal/app"
	"github.com/Dicklesworthstone/statline/internal/apperrors"
	"github.com/Dicklesworthstone/statline/internal/config"
	"github.com/Dicklesworthstone/statline/internal/logging"
)

func main() {
	cfg, err := config.FromFlags(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		// The flag set has already printed the problem and usage.
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	log := logging.New(os.Stderr, cfg.LogLevel)
	os.Exit(app.Run(cfg, app.SystemSources(), os.Stdout, log))
}
