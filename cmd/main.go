package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"podcasttimer/internal/cli"
	"podcasttimer/internal/cli/settings"
	"podcasttimer/internal/cli/system"
	"podcasttimer/internal/logger"
	"podcasttimer/internal/platform"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding settings and logs. Defaults to the user config directory." type:"path"`
	Debug     bool   `help:"Enable debug logging."`

	Run      system.RunCmd        `cmd:"" help:"Open the timer window." default:"1"`
	Tui      system.TuiCmd        `cmd:"" help:"Run the timers in the terminal."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or change stored settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("podcast-timer"),
		kong.Description("Episode and speaker countdown timers for podcast recordings"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": "v1.0.0"},
	)

	configDir, err := platform.ConfigDir(CLI.ConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Stderr:    CLI.Debug && ctx.Command() != "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		ConfigDir: configDir,
		Debug:     CLI.Debug,
	}

	err = ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
