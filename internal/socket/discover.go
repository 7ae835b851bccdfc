// Package socket locates the compositor's IPC endpoint.
package socket

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/yourusername/swaysplit/internal/logging"
)

const (
	EnvSway       = "SWAYSOCK"
	EnvI3         = "I3SOCK"
	EnvRuntimeDir = "XDG_RUNTIME_DIR"
)

// ErrNotFound is returned when no endpoint could be located
var ErrNotFound = errors.New("no compositor IPC socket found (is SWAYSOCK set?)")

// sway-ipc.<uid>.<pid>.sock
var swaySocketPattern = regexp.MustCompile(`^sway-ipc\.(\d+)\.(\d+)\.sock$`)

// Location is a discovered endpoint and where it came from
type Location struct {
	Path   string
	Source string
}

// LivenessFunc reports whether the process owning a socket is running
type LivenessFunc func(ctx context.Context, pid int32) (bool, error)

// ProcessAlive checks the pid with gopsutil
func ProcessAlive(ctx context.Context, pid int32) (bool, error) {
	return process.PidExistsWithContext(ctx, pid)
}

// Discoverer resolves the endpoint from the environment, then the runtime dir
type Discoverer struct {
	Getenv func(string) string
	UID    int
	Alive  LivenessFunc
}

// NewDiscoverer returns a Discoverer for the current process environment
func NewDiscoverer() *Discoverer {
	return &Discoverer{
		Getenv: os.Getenv,
		UID:    os.Getuid(),
		Alive:  ProcessAlive,
	}
}

// Discover finds the IPC socket path
func Discover(ctx context.Context) (Location, error) {
	return NewDiscoverer().Discover(ctx)
}

// Discover checks SWAYSOCK, then I3SOCK, then scans XDG_RUNTIME_DIR
func (d *Discoverer) Discover(ctx context.Context) (Location, error) {
	for _, name := range []string{EnvSway, EnvI3} {
		if v := strings.TrimSpace(d.Getenv(name)); v != "" {
			return Location{Path: v, Source: name}, nil
		}
	}

	runtimeDir := strings.TrimSpace(d.Getenv(EnvRuntimeDir))
	if runtimeDir == "" {
		return Location{}, ErrNotFound
	}

	path, err := d.Scan(ctx, runtimeDir)
	if err != nil {
		return Location{}, err
	}
	return Location{Path: path, Source: EnvRuntimeDir}, nil
}

type candidate struct {
	path string
	pid  int32
}

// Scan looks for sway sockets owned by this user whose compositor process
// is still running. The newest process wins when several are alive.
func (d *Discoverer) Scan(ctx context.Context, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read runtime dir %s: %w", dir, err)
	}

	var candidates []candidate
	for _, e := range entries {
		m := swaySocketPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		uid, err := strconv.Atoi(m[1])
		if err != nil || uid != d.UID {
			continue
		}
		pid, err := strconv.ParseInt(m[2], 10, 32)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{path: filepath.Join(dir, e.Name()), pid: int32(pid)})
	}

	// Higher pid first, most likely the current session
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].pid > candidates[j].pid
	})

	for _, c := range candidates {
		alive, err := d.Alive(ctx, c.pid)
		if err != nil {
			logging.Warn().Err(err).Int32("pid", c.pid).Msg("liveness check failed")
			continue
		}
		if !alive {
			logging.Debug().Str("path", c.path).Int32("pid", c.pid).Msg("skipping stale socket")
			continue
		}
		return c.path, nil
	}

	return "", ErrNotFound
}
