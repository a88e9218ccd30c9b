package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/saylorsolutions/sphragis/pkg/config"
	"github.com/saylorsolutions/sphragis/pkg/derive"
	"github.com/spf13/cobra"
)

func newDeriveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives a passphrase from a secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDerive()
		},
	}
	cmd.Flags().StringP(keyConfig, "c", config.DefaultPath, "Path to the config file with the Argon2id version, params, and salt.")
	cmd.Flags().Int(keyDisplayDuration, defaultDisplayDuration, "Seconds the passphrase stays on screen in interactive mode.")
	a.bindFlags(cmd.Flags(), keyConfig, keyDisplayDuration)
	return cmd
}

func (a *app) runDerive() error {
	path := a.v.GetString(keyConfig)
	seconds := a.v.GetInt(keyDisplayDuration)
	if seconds <= 0 {
		return fmt.Errorf("display duration must be at least 1 second, got %d", seconds)
	}

	slog.Debug("Reading config", "path", path)
	ctx, err := config.Load(path)
	if err != nil {
		return a.logFailure("load config", err)
	}

	interactive := a.isTerminal()
	slog.Debug("Selected input mode", "interactive", interactive)
	p, err := derive.NewPipeline(
		derive.UseStreams(a.in, a.out),
		derive.Interactive(interactive),
		derive.DisplayFor(time.Duration(seconds)*time.Second),
		derive.UseLogger(slog.Default()),
	)
	if err != nil {
		return err
	}
	return a.logFailure("derive", p.Run(ctx))
}
