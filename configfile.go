package refsync

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of a Syncer configuration.
type FileConfig struct {
	File             string   `yaml:"file"`
	DestDir          string   `yaml:"destDir"`
	SearchPaths      []string `yaml:"searchPaths"`
	SearchPathEnv    string   `yaml:"searchPathEnv"`
	ExtraSearchPaths []string `yaml:"extraSearchPaths"`
	LockTimeout      string   `yaml:"lockTimeout"`
	VerifySQLite     bool     `yaml:"verifySQLite"`
}

// LoadConfigFile reads a YAML configuration and returns the equivalent
// options. Relative directories are resolved against the directory holding
// the file. Unknown keys are rejected.
func LoadConfigFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	opts, err := ParseConfig(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return opts, nil
}

// ParseConfig decodes YAML configuration data. Relative directories are
// joined to baseDir. All errors wrap ErrInvalidConfig.
func ParseConfig(data []byte, baseDir string) ([]Option, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidConfig, err)
	}
	return fc.Options(baseDir)
}

// Options validates fc and converts it to options.
func (fc FileConfig) Options(baseDir string) ([]Option, error) {
	if fc.File == "" {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidConfig)
	}
	if fc.File != filepath.Base(fc.File) {
		return nil, fmt.Errorf("%w: file must be a base name, got %q", ErrInvalidConfig, fc.File)
	}
	if fc.DestDir == "" {
		return nil, fmt.Errorf("%w: destDir is required", ErrInvalidConfig)
	}
	if len(fc.SearchPaths) == 0 && fc.SearchPathEnv == "" {
		return nil, fmt.Errorf("%w: searchPaths or searchPathEnv is required", ErrInvalidConfig)
	}

	resolve := func(field string, dirs []string) ([]string, error) {
		out := make([]string, 0, len(dirs))
		for i, d := range dirs {
			if d == "" {
				return nil, fmt.Errorf("%w: %s[%d] is empty", ErrInvalidConfig, field, i)
			}
			out = append(out, resolveDir(baseDir, d))
		}
		return out, nil
	}

	searchPaths, err := resolve("searchPaths", fc.SearchPaths)
	if err != nil {
		return nil, err
	}
	extras, err := resolve("extraSearchPaths", fc.ExtraSearchPaths)
	if err != nil {
		return nil, err
	}

	// The environment variable is consulted before the literal paths so a
	// caller can override the packaged location.
	opts := []Option{
		WithFileName(fc.File),
		WithDestDir(resolveDir(baseDir, fc.DestDir)),
	}
	if fc.SearchPathEnv != "" {
		opts = append(opts, WithSearchPathsFromEnv(fc.SearchPathEnv))
	}
	if len(searchPaths) > 0 {
		opts = append(opts, WithSearchPaths(searchPaths...))
	}
	if len(extras) > 0 {
		opts = append(opts, WithExtraSearchPaths(extras...))
	}

	if fc.LockTimeout != "" {
		d, err := time.ParseDuration(fc.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("%w: lockTimeout: %w", ErrInvalidConfig, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: lockTimeout must be positive, got %s", ErrInvalidConfig, d)
		}
		opts = append(opts, WithLockTimeout(d))
	}
	if fc.VerifySQLite {
		opts = append(opts, WithSQLiteVerify())
	}

	return opts, nil
}

func resolveDir(baseDir, dir string) string {
	if filepath.IsAbs(dir) || baseDir == "" {
		return dir
	}
	return filepath.Join(baseDir, dir)
}
