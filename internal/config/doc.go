// Package config loads the service configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// MUCAPI_* environment variables. The result is validated once and treated
// as immutable for the life of the process.
package config
