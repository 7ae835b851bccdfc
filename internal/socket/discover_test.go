package socket

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func aliveSet(pids ...int32) LivenessFunc {
	set := make(map[int32]bool)
	for _, p := range pids {
		set[p] = true
	}
	return func(_ context.Context, pid int32) (bool, error) {
		return set[pid], nil
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover_EnvPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected Location
	}{
		{
			name:     "swaysock wins",
			env:      map[string]string{EnvSway: "/run/sway.sock", EnvI3: "/run/i3.sock"},
			expected: Location{Path: "/run/sway.sock", Source: EnvSway},
		},
		{
			name:     "i3sock fallback",
			env:      map[string]string{EnvSway: "  ", EnvI3: "/run/i3.sock"},
			expected: Location{Path: "/run/i3.sock", Source: EnvI3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Discoverer{Getenv: fakeEnv(tt.env), Alive: aliveSet()}
			got, err := d.Discover(context.Background())
			if err != nil {
				t.Fatalf("Discover() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Discover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestDiscover_NothingSet(t *testing.T) {
	d := &Discoverer{Getenv: fakeEnv(nil), Alive: aliveSet()}
	if _, err := d.Discover(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Discover() error = %v, want ErrNotFound", err)
	}
}

func TestDiscover_RuntimeDirScan(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"sway-ipc.1000.100.sock", // alive, older
		"sway-ipc.1000.200.sock", // alive, newer
		"sway-ipc.1000.300.sock", // stale
		"sway-ipc.1001.400.sock", // other user
		"wayland-1",
		"sway-ipc.sock",
	)

	d := &Discoverer{
		Getenv: fakeEnv(map[string]string{EnvRuntimeDir: dir}),
		UID:    1000,
		Alive:  aliveSet(100, 200, 400),
	}

	got, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() unexpected error: %v", err)
	}
	want := Location{Path: filepath.Join(dir, "sway-ipc.1000.200.sock"), Source: EnvRuntimeDir}
	if got != want {
		t.Errorf("Discover() = %+v, want %+v", got, want)
	}
}

func TestScan_AllStale(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "sway-ipc.1000.300.sock")

	d := &Discoverer{UID: 1000, Alive: aliveSet()}
	if _, err := d.Scan(context.Background(), dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Scan() error = %v, want ErrNotFound", err)
	}
}

func TestScan_LivenessError(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "sway-ipc.1000.300.sock", "sway-ipc.1000.20.sock")

	d := &Discoverer{
		UID: 1000,
		Alive: func(_ context.Context, pid int32) (bool, error) {
			if pid == 300 {
				return false, errors.New("permission denied")
			}
			return true, nil
		},
	}

	got, err := d.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}
	if got != filepath.Join(dir, "sway-ipc.1000.20.sock") {
		t.Errorf("Scan() = %q", got)
	}
}

func TestScan_MissingDir(t *testing.T) {
	d := &Discoverer{UID: 1000, Alive: aliveSet()}
	if _, err := d.Scan(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Scan() expected error for missing dir, got nil")
	}
}

func TestProcessAlive_Self(t *testing.T) {
	alive, err := ProcessAlive(context.Background(), int32(os.Getpid()))
	if err != nil {
		t.Fatalf("ProcessAlive() unexpected error: %v", err)
	}
	if !alive {
		t.Error("ProcessAlive(self) = false, want true")
	}
}
