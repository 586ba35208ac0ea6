// Package config handles vfsh configuration using Viper.
//
// Values come from, in order of precedence: command-line flags bound by the
// caller, VFSH_* environment variables, a YAML config file (vfsh.yaml in the
// user config directory, or the file named by --config), and defaults.
package config
