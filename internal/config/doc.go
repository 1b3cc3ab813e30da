// Package config defines the mirror configuration and its defaults.
package config
