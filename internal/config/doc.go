// Package config holds runtime configuration for tikvault.
//
// Configuration is assembled from three layers, later layers winning:
//  1. Built-in defaults (NewConfig)
//  2. An optional YAML config file (.tikvault in the current or home
//     directory, or an explicit path)
//  3. CLI flags
//
// Design decision: The Config struct is flat and passed through the
// application via dependency injection rather than global state. The number
// of options is small; nesting would add complexity without benefit.
package config
