// Package config loads runtime configuration for the linkify CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/--config.
//  3. Command-line flags, bound by the CLI root command, which override
//     earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "home": "/home/alice/.linkify",
//	  "timeout": "10s"
//	}
package config
