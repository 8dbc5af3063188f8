package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ellipszist/texport/internal/fsutil"
)

// Write writes the configuration to path with 0600 permissions, creating the
// directory with 0700. An existing file is only replaced when overwrite is set.
func Write(cfg *Config, path string, overwrite bool) error {
	path = expandHome(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory %s; %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config; %w", err)
	}

	header := fmt.Sprintf("# texport configuration\n# Generated: %s\n\n",
		time.Now().Format(time.RFC3339))

	_, err = fsutil.WriteFileAtomic(path, fsutil.WriteOptions{Perm: 0600, Overwrite: overwrite}, func(w io.Writer) error {
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write config file %s; %w", path, err)
	}

	return nil
}

// WriteDefault writes the configuration to InitPath.
func WriteDefault(cfg *Config, overwrite bool) error {
	return Write(cfg, InitPath(), overwrite)
}
