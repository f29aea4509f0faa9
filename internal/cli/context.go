package cli

import (
	"fmt"

	"podcasttimer/internal/platform"
)

// Context is passed to every command.
type Context struct {
	ConfigDir string
	Debug     bool
}

// AcquireInstance makes sure a single frontend drives the stored session.
func (c *Context) AcquireInstance() (*platform.InstanceGuard, error) {
	guard, err := platform.AcquireSingleInstance(platform.AppName, c.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("single instance: %w", err)
	}
	return guard, nil
}
