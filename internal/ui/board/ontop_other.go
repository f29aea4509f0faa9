//go:build !windows

package board

import (
	"sync"

	"podcasttimer/internal/logger"
)

var ontopWarning sync.Once

func (board *Window) applyAlwaysOnTop(enabled bool) {
	if !enabled {
		return
	}
	ontopWarning.Do(func() {
		logger.Info("always on top is not supported on this platform")
	})
}
