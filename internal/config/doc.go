// Package config manages expertkit's own settings stored at
// ~/agents/config.yaml: the default port and overrides for the template and
// projects directories. It never reads environment variables.
package config
