package resource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/countof"
)

// Keys accepted by ParseConfig.
const (
	KeyMemoryLimit          = "memory_limit"
	KeyMaxBackgroundWorkers = "max_background_workers"
	KeyIOLimitPerSec        = "io_limit_per_sec"
)

// ParseConfig builds a Config from string settings, as found in environment
// variables or flag maps. Sizes accept human-readable values such as
// "512MiB" or "1.5 GB". Unknown keys are rejected.
func ParseConfig(settings map[string]string) (Config, error) {
	var cfg Config

	for key, value := range settings {
		value = strings.TrimSpace(value)

		switch key {
		case KeyMemoryLimit:
			n, err := countof.ParseBytes(value)
			if err != nil {
				return Config{}, fmt.Errorf("resource: %s: %w", key, err)
			}
			cfg.MemoryLimit = n
		case KeyIOLimitPerSec:
			n, err := countof.ParseBytes(value)
			if err != nil {
				return Config{}, fmt.Errorf("resource: %s: %w", key, err)
			}
			cfg.IOLimitPerSec = n
		case KeyMaxBackgroundWorkers:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Config{}, fmt.Errorf("resource: %s: %w", key, err)
			}
			if n < 0 {
				return Config{}, fmt.Errorf("resource: %s: negative value %d", key, n)
			}
			cfg.MaxBackgroundWorkers = n
		default:
			return Config{}, fmt.Errorf("resource: unknown setting %q", key)
		}
	}

	return cfg, nil
}
