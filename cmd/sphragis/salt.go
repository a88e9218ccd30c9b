package main

import (
	"fmt"
	"log/slog"

	"github.com/saylorsolutions/sphragis/pkg/codec"
	"github.com/saylorsolutions/sphragis/pkg/kdf"
	"github.com/saylorsolutions/sphragis/pkg/salt"
	"github.com/spf13/cobra"
)

func newGenerateSaltCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-salt",
		Short: "Prints a new random salt as base64",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerateSalt()
		},
	}
	cmd.Flags().IntP(keyLength, "l", salt.DefaultLength, "Number of random bytes in the salt.")
	a.bindFlags(cmd.Flags(), keyLength)
	return cmd
}

func (a *app) runGenerateSalt() error {
	length := a.v.GetInt(keyLength)
	if length < kdf.MinSaltLen {
		slog.Warn("Salt is shorter than derive accepts", "length", length, "minimum", kdf.MinSaltLen)
	}
	gen, err := salt.NewGenerator()
	if err != nil {
		return err
	}
	s, err := gen.Generate(length)
	if err != nil {
		return a.logFailure("generate salt", err)
	}
	_, err = fmt.Fprintln(a.out, codec.EncodeSalt(s))
	return err
}
