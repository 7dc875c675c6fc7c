package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version"`

	Play     PlayCmd     `cmd:"" help:"Play a game at the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-vs-bot games and report statistics"`
	Serve    ServeCmd    `cmd:"" help:"Broadcast a bot game to websocket spectators"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pitch"),
		kong.Description("Four-player partnership Pitch with a wild card"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
