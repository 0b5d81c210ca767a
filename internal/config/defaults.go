package config

const (
	systemConfigPath  = "/etc/datalake.toml"
	defaultUserConfig = "~/.config/datalake/config.toml"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
