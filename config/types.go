package config

// Config is the client and processor configuration shared by the CLI and
// transaction processors embedding the toolkit.
type Config struct {
	Service     string `toml:"Service" yaml:"service"`
	Environment string `toml:"Environment" yaml:"environment"`
	LogLevel    string `toml:"LogLevel" yaml:"log_level"`
	LogFile     string `toml:"LogFile" yaml:"log_file"`

	// KeyFile holds a raw or hex private key. KeystorePath points at an
	// encrypted v3 keystore whose passphrase is read from KeystorePassEnv
	// or prompted for. At most one of the two may be set.
	KeyFile         string `toml:"KeyFile" yaml:"key_file"`
	KeystorePath    string `toml:"KeystorePath" yaml:"keystore_path"`
	KeystorePassEnv string `toml:"KeystorePassEnv" yaml:"keystore_pass_env"`

	FamilyName    string `toml:"FamilyName" yaml:"family_name"`
	FamilyVersion string `toml:"FamilyVersion" yaml:"family_version"`
	// Namespaces lists extra address prefixes the family may touch besides
	// its own.
	Namespaces []string `toml:"Namespaces" yaml:"namespaces"`
}

const (
	DefaultService     = "sawtk"
	DefaultEnvironment = "local"
	DefaultLogLevel    = "info"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Service:     DefaultService,
		Environment: DefaultEnvironment,
		LogLevel:    DefaultLogLevel,
		Namespaces:  []string{},
	}
}
