// Package main provides the CLI entrypoint for idresolve.
// It wires subcommands (resolve, sign, session), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"fmt"
	"idresolve/internal/config"
	"idresolve/pkg/logger"
	"idresolve/pkg/serrors"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "idresolve",
		Short:         "Resolves a person's identity to a matching Instagram profile",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment, cfg.Log.Level)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		resolveCommand(cfg),
		signCommand(cfg),
		sessionCommand(cfg),
	)

	err = rootCmd.ExecuteContext(ctx)
	_ = logger.Get(ctx).Sync()
	if err != nil {
		report(err)
		os.Exit(1) //nolint: gocritic
	}
}

// report prints a one-line cause for a failed command.
func report(err error) {
	prefix := "error"
	if serrors.IsFatal(err) {
		prefix = "fatal"
	}

	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
}
