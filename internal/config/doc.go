// Package config loads, normalizes, and validates delugectl configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DELUGE_PASSWORD environment
// fallback so credentials can stay out of the config file. Obtain settings
// through this package so downstream code receives sanitized paths,
// canonical log formats, and clear validation errors.
package config
