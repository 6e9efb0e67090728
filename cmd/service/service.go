package main

import (
	"context"
	"fmt"
	"kstep/cfg"
	"kstep/core/api"
	"kstep/core/logging"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(ctx *cli.Context) (cfg.Config, error) {
	c := cfg.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if c, err = cfg.Load(path); err != nil {
			return cfg.Config{}, err
		}
	}
	if ctx.IsSet("addr") {
		c.API.Addr = ctx.String("addr")
	}
	if ctx.IsSet("log-level") {
		c.Log.Level = ctx.String("log-level")
	}
	if ctx.IsSet("log-file") {
		c.Log.File = ctx.String("log-file")
	}
	if err := c.Validate(); err != nil {
		return cfg.Config{}, err
	}
	return c, nil
}

func serveCmd(ctx *cli.Context) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(c.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.Start(sigCtx, c, logger); err != nil {
		logger.Error("api stopped", zap.Error(err))
		return err
	}
	logger.Info("api stopped")
	return nil
}

// configCmd prints the effective configuration as TOML.
func configCmd(ctx *cli.Context) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return toml.NewEncoder(os.Stdout).Encode(c)
}

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a TOML config file",
			EnvVars: []string{"KSTEP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "addr",
			Usage: "listen address, overrides api.addr",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error; overrides log.level",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "rotated log file, overrides log.file",
		},
	}

	app := &cli.App{
		Name:   "kstep",
		Usage:  "step-by-step 2-D k-means service",
		Flags:  flags,
		Action: serveCmd,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API (default)",
				Flags:  flags,
				Action: serveCmd,
			},
			{
				Name:   "config",
				Usage:  "print the effective configuration",
				Flags:  flags,
				Action: configCmd,
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
