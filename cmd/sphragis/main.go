package main

import (
	"os"
	"runtime/debug"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/sphragis/cmd/internal"
)

var version = "dev"

func main() {
	memguard.CatchInterrupt()
	defer func() {
		if r := recover(); r != nil {
			internal.Echo("Fatal error: %v", r)
			internal.Echo("%s", debug.Stack())
			memguard.SafeExit(internal.ExitError)
		}
	}()

	cmd := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr))
	memguard.SafeExit(internal.HandleError(cmd.Execute()))
}
