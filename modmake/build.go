package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	sphragisVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	sphragis := NewAppBuild("sphragis", "cmd/sphragis", sphragisVersion)
	sphragis.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", sphragisVersion).
			CgoEnabled(false)
	})
	sphragis.Variant("windows", "amd64")
	sphragis.Variant("linux", "amd64")
	sphragis.Variant("linux", "arm64")
	sphragis.Variant("darwin", "amd64")
	sphragis.Variant("darwin", "arm64")
	b.ImportApp(sphragis)

	b.Execute()
}
