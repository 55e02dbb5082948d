package main

import (
	"fmt"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-members-server/internal/config"
)

var (
	flagEnvFiles []string
	cfg          config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "members-server",
		Short: "Session authenticated members web application",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.New(flagEnvFiles...)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = c
			setupLogging(cfg)
			return nil
		},
		RunE:         func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSliceVar(&flagEnvFiles, "env-file", []string{".env"}, "dotenv files loaded before reading the environment")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSetRoleCmd(),
	)
	return root
}

func setupLogging(c config.Config) {
	zerolog.SetGlobalLevel(c.GetLogLevel())
	if c.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
