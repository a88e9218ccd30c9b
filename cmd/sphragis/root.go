package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/saylorsolutions/sphragis/cmd/internal"
	"github.com/saylorsolutions/sphragis/pkg/config"
	"github.com/saylorsolutions/sphragis/pkg/salt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	envPrefix              = "SPHRAGIS"
	keyVerbose             = "verbose"
	keyConfig              = "config"
	keyDisplayDuration     = "display-duration"
	keyLength              = "length"
	defaultDisplayDuration = 60
)

// app holds the streams and settings shared by all commands.
type app struct {
	v          *viper.Viper
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	isTerminal func() bool
}

func newApp(in *os.File, out, errOut io.Writer) *app {
	return &app{
		v:      newViper(),
		in:     in,
		out:    out,
		errOut: errOut,
		isTerminal: func() bool {
			return term.IsTerminal(int(in.Fd()))
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(keyConfig, config.DefaultPath)
	v.SetDefault(keyDisplayDuration, defaultDisplayDuration)
	v.SetDefault(keyLength, salt.DefaultLength)
	return v
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sphragis",
		Short: "Derives a deterministic passphrase from a secret with Argon2id",
		Long: `sphragis derives a deterministic passphrase from a secret phrase using Argon2id.

The non-secret inputs (Argon2 version, cost parameters, and salt) are read from a JSON5 or YAML config file.
When stdin is a terminal the secret is entered interactively and the passphrase is shown for a limited time.
Otherwise one line is read from stdin and the passphrase is written to stdout as one line.

Running without a subcommand is the same as running "sphragis derive".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			internal.SetupLogging(a.errOut, a.v.GetBool(keyVerbose))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDerive()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().BoolP(keyVerbose, "v", false, "Enables debug logging on stderr.")
	a.bindFlags(root.PersistentFlags(), keyVerbose)

	root.AddCommand(newDeriveCmd(a), newGenerateSaltCmd(a))
	return root
}

// bindFlags makes viper prefer the named flags when they are set on the command line.
func (a *app) bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (a *app) logFailure(op string, err error) error {
	if err != nil {
		slog.Debug("Command failed", "op", op, "cause", internal.Cause(err))
	}
	return err
}
