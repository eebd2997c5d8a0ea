// Package main provides the entry point for the pkgdb CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/pkgdb/cmd/pkgdb/app"
)

// Version information populated at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())

	err = application.Execute(ctx, os.Args[1:])
	cancel()
	app.ExitOnError(err)
}
