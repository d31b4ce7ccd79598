package keywords

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load returns the keyword tables, optionally calibrated from a YAML
// file. Tables present in the file replace the corresponding defaults;
// tables the file omits keep their built-in values.
//
// A missing or unreadable file returns the defaults along with the
// error so the caller can degrade gracefully.
func Load(path string) (*Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	if _, err := os.Stat(path); err != nil {
		slog.Warn("keyword calibration file not found, using defaults", "path", path, "err", err)
		return tables, fmt.Errorf("keywords: calibration file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		slog.Warn("failed to parse keyword calibration, using defaults", "path", path, "err", err)
		return tables, fmt.Errorf("keywords: parse calibration: %w", err)
	}

	if err := k.Unmarshal("", tables); err != nil {
		// tables may be partially overwritten; reload defaults to stay consistent
		slog.Warn("failed to unmarshal keyword calibration, using defaults", "path", path, "err", err)
		return DefaultTables(), fmt.Errorf("keywords: unmarshal calibration: %w", err)
	}

	slog.Info("loaded keyword calibration", "path", path)
	return tables, nil
}
