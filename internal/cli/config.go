package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk CLI configuration, stored at
// ~/.renamed/config.yaml. Values here are the lowest-precedence source;
// flags and environment variables override them.
type FileConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// DefaultConfigPath returns the configuration file path for the current
// platform:
//   - macOS/Linux: ~/.renamed/config.yaml
//   - Windows: %USERPROFILE%\.renamed\config.yaml
func DefaultConfigPath() string {
	var homeDir string
	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	return filepath.Join(homeDir, ".renamed", "config.yaml")
}

// LoadFileConfig reads the config file at path. A missing file is not an
// error; it returns an empty config.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveFileConfig writes cfg to path, creating the parent directory if
// needed. The file is written with owner-only permissions since it holds
// an API key.
func SaveFileConfig(path string, cfg *FileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// ResolveAPIKey picks the API key to use: the --api-key flag wins, then
// the RENAMED_API_KEY environment variable, then the config file.
func ResolveAPIKey(flagValue string, fileCfg *FileConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("RENAMED_API_KEY"); env != "" {
		return env
	}
	if fileCfg != nil {
		return fileCfg.APIKey
	}
	return ""
}

// ResolveBaseURL picks the base URL with the same precedence as the API key.
func ResolveBaseURL(flagValue string, fileCfg *FileConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("RENAMED_BASE_URL"); env != "" {
		return env
	}
	if fileCfg != nil {
		return fileCfg.BaseURL
	}
	return ""
}
