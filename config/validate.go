package config

import (
	"fmt"

	"github.com/kigichang/sawtk/core/namespace"
)

var validLogLevels = map[string]struct{}{
	"debug":   {},
	"info":    {},
	"warn":    {},
	"warning": {},
	"error":   {},
}

func (cfg *Config) validate() error {
	if cfg == nil {
		return fmt.Errorf("configuration is missing")
	}
	if _, ok := validLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.KeyFile != "" && cfg.KeystorePath != "" {
		return fmt.Errorf("key_file and keystore_path are mutually exclusive")
	}
	if cfg.KeystorePassEnv != "" && cfg.KeystorePath == "" {
		return fmt.Errorf("keystore_pass_env requires keystore_path")
	}
	if cfg.FamilyName != "" && cfg.FamilyVersion == "" {
		return fmt.Errorf("family_version is required when family_name is set")
	}
	for _, prefix := range cfg.Namespaces {
		if !namespace.IsPrefix(prefix) {
			return fmt.Errorf("namespace %q is not a %d character hex prefix", prefix, namespace.PrefixLength)
		}
	}
	return nil
}

// Validate checks a configuration built in code rather than loaded.
func (cfg *Config) Validate() error {
	cfg.normalize()
	return cfg.validate()
}
