package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadEngineDefaults reads an EngineDefaults override file at path,
// starting from DefaultEngineDefaults so a partial YAML document only
// overrides the fields it sets. An empty path returns the compiled-in
// defaults unchanged. This mirrors the teacher's LoadAppConfig shape,
// but returns the config instead of writing a package-level global — the
// engine holds no process-wide state (spec.md §5).
func LoadEngineDefaults(path string) (EngineDefaults, error) {
	defaults := DefaultEngineDefaults()
	if path == "" {
		return defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineDefaults{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return EngineDefaults{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := validator.New().Struct(defaults); err != nil {
		return EngineDefaults{}, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return defaults, nil
}

// ValidateOptions enforces Options' struct tags, the same way the
// teacher validates a loaded AppConfig's sub-structs.
func ValidateOptions(opts Options) error {
	if err := validator.New().Struct(opts); err != nil {
		return fmt.Errorf("config: invalid options: %w", err)
	}
	return nil
}
