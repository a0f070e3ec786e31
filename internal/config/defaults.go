package config

const (
	defaultHost           = "127.0.0.1"
	defaultPort           = 58846
	defaultTimeoutSeconds = 30
	defaultDataDir        = "~/.local/share/delugectl"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Host:           defaultHost,
			Port:           defaultPort,
			TLSSkipVerify:  true,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
