package main

import (
	"github.com/alecthomas/kong"

	"droscher.com/BrewJournal/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("BrewJournal"), kong.Description("BrewJournal is a coffee brewing journal."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
