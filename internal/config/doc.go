// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and SCROLL_-prefixed environment
// variables. It provides type-safe access to settings needed by different
// components while keeping configuration details separate from business logic.
package config
