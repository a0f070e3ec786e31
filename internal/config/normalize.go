package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDaemon() error {
	c.Daemon.Host = strings.TrimSpace(c.Daemon.Host)
	if c.Daemon.Host == "" {
		c.Daemon.Host = defaultHost
	}
	if c.Daemon.Port == 0 {
		c.Daemon.Port = defaultPort
	}
	if c.Daemon.TimeoutSeconds == 0 {
		c.Daemon.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Daemon.Username = strings.TrimSpace(c.Daemon.Username)
	if c.Daemon.Password == "" {
		c.Daemon.Password = os.Getenv("DELUGE_PASSWORD")
	}
	return nil
}

func (c *Config) normalizePaths() error {
	dir := c.Paths.DataDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultDataDir
	}
	expanded, err := expandPath(dir)
	if err != nil {
		return err
	}
	c.Paths.DataDir = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
