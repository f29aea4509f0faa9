package system

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"podcasttimer/internal/app"
	"podcasttimer/internal/cli"
	"podcasttimer/internal/logger"
	"podcasttimer/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	guard, err := ctx.AcquireInstance()
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	runtime := app.New(app.Options{ConfigDir: ctx.ConfigDir, TickInterval: time.Second})
	defer runtime.Close()

	logger.Info("terminal frontend started", "config_dir", ctx.ConfigDir)
	p := tea.NewProgram(tui.NewModel(runtime.Controller()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal frontend: %w", err)
	}
	return nil
}
