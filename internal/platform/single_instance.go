package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
	"strconv"
	"sync"

	"podcasttimer/internal/logger"
)

const (
	lockHost      = "127.0.0.1"
	firstLockPort = 20000
	lockPortCount = 20000
)

// ErrAlreadyRunning indicates another frontend owns the config dir.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard owns the loopback port that marks a config dir as in use.
type InstanceGuard struct {
	mu       sync.Mutex
	listener net.Listener
}

// AcquireSingleInstance claims the config dir for this process. Separate
// config dirs map to separate ports and may run side by side.
func AcquireSingleInstance(appName, configDir string) (*InstanceGuard, error) {
	address := net.JoinHostPort(lockHost, strconv.Itoa(lockPort(appName, configDir)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, address)
	}
	logger.Debug("instance lock acquired", "address", address, "config_dir", configDir)
	return &InstanceGuard{listener: listener}, nil
}

// Release gives the config dir back. Calling it again is a no-op.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.listener == nil {
		return nil
	}
	listener := guard.listener
	guard.listener = nil
	if err := listener.Close(); err != nil {
		return fmt.Errorf("release instance lock: %w", err)
	}
	return nil
}

// Address returns the held lock address, or "" once released.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

func lockPort(appName, configDir string) int {
	hash := fnv.New32a()
	for _, part := range []string{appName, filepath.Clean(configDir)} {
		_, _ = hash.Write([]byte(part))
		_, _ = hash.Write([]byte{0})
	}
	return firstLockPort + int(hash.Sum32()%lockPortCount)
}
