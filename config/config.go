package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as TOML. A missing file yields the
// defaults; nothing is written back.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, cfg)
	default:
		err = decodeTOML(path, cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s has unknown key %s", path, undecoded[0])
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (cfg *Config) normalize() {
	if cfg == nil {
		return
	}
	cfg.Service = strings.TrimSpace(cfg.Service)
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}
	cfg.Environment = strings.TrimSpace(cfg.Environment)
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)
	cfg.KeyFile = strings.TrimSpace(cfg.KeyFile)
	cfg.KeystorePath = strings.TrimSpace(cfg.KeystorePath)
	cfg.KeystorePassEnv = strings.TrimSpace(cfg.KeystorePassEnv)
	cfg.FamilyName = strings.TrimSpace(cfg.FamilyName)
	cfg.FamilyVersion = strings.TrimSpace(cfg.FamilyVersion)

	prefixes := make([]string, 0, len(cfg.Namespaces))
	for _, prefix := range cfg.Namespaces {
		if trimmed := strings.ToLower(strings.TrimSpace(prefix)); trimmed != "" {
			prefixes = append(prefixes, trimmed)
		}
	}
	cfg.Namespaces = prefixes
}
