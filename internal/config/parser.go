package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Size patterns
	sizePattern = regexp.MustCompile(`^(\d+)\s*(B|KB|KiB|MB|MiB|GB|GiB)?$`)
)

var sizeUnits = map[string]uint64{
	"":    1,
	"B":   1,
	"KB":  1000,
	"KiB": 1 << 10,
	"MB":  1000 * 1000,
	"MiB": 1 << 20,
	"GB":  1000 * 1000 * 1000,
	"GiB": 1 << 30,
}

// ParseSize parses a payload size string into bytes
// Supported formats:
//   - "1048576" - Plain bytes
//   - "512KiB", "64MiB", "1GiB" - Binary units
//   - "500KB", "10MB" - Decimal units
func ParseSize(s string) (uint32, error) {
	s = strings.TrimSpace(s)

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	value, err := strconv.ParseUint(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q: %w", s, err)
	}

	unit := sizeUnits[matches[2]]
	if value > math.MaxUint32/unit {
		return 0, fmt.Errorf("size %q exceeds %d bytes", s, uint64(math.MaxUint32))
	}

	return uint32(value * unit), nil
}

// FormatSize formats bytes using the largest exact binary unit
func FormatSize(n uint32) string {
	switch {
	case n != 0 && n%(1<<30) == 0:
		return fmt.Sprintf("%dGiB", n>>30)
	case n != 0 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMiB", n>>20)
	case n != 0 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKiB", n>>10)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ParseTimeout parses a timeout string. "0" disables the timeout.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", s)
	}
	return d, nil
}
