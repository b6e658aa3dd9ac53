// Package config defines the application configuration structures and the
// loading logic that populates them from defaults, an optional config file,
// and environment variables.
package config
